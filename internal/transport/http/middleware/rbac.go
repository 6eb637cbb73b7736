package middleware

import (
	"net/http"

	"cardcredit/internal/transport/http/api"
)

// RequireScope rejects anonymous callers and callers whose token lacks scope.
func RequireScope(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := GetCaller(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}
			if caller.Scope != scope {
				api.Fail(w, http.StatusForbidden, "forbidden", "insufficient scope", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
