package middleware

import (
	"context"
	"net/http"
	"strings"

	"cardcredit/internal/domain/auth"
)

type ctxKey string

const ctxKeyCaller ctxKey = "caller"

// Auth attaches the caller from a valid bearer token. Requests without a
// usable token pass through anonymously; RequireCaller enforces presence.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || secret == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyCaller, auth.Caller{
				Subject: claims.Subject,
				Scope:   claims.Scope,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetCaller(ctx context.Context) (auth.Caller, bool) {
	caller, ok := ctx.Value(ctxKeyCaller).(auth.Caller)
	return caller, ok
}
