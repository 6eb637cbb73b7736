package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cardcredit/internal/domain/auth"
)

func TestAuthMiddlewareSetsCaller(t *testing.T) {
	secret := "test-secret"
	token, err := auth.GenerateToken(secret, "portal", time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	called := false
	handler := Auth(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		caller, ok := GetCaller(r.Context())
		if !ok {
			t.Fatal("expected caller in context")
		}
		if caller.Subject != "portal" || caller.Scope != auth.ScopeCalculate {
			t.Fatalf("unexpected caller: %+v", caller)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if !called {
		t.Fatal("expected handler to be called")
	}
}

func TestAuthMiddlewareIgnoresBadToken(t *testing.T) {
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetCaller(r.Context()); ok {
			t.Fatal("did not expect caller in context")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestRequireScope(t *testing.T) {
	secret := "test-secret"
	protected := Auth(secret)(RequireScope(auth.ScopeCalculate)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	anon := httptest.NewRecorder()
	protected.ServeHTTP(anon, httptest.NewRequest(http.MethodPost, "/api/v1/deductions/calculate", nil))
	if anon.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous caller, got %d", anon.Code)
	}

	token, err := auth.GenerateToken(secret, "portal", time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deductions/calculate", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected authorized request to pass, got %d", rec.Code)
	}
}
