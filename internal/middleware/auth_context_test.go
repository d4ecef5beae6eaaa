package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption-shelter/internal/ports/auth"
)

func callerHandler(got *auth.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = Caller(r.Context())
	})
}

func TestAuthContext_DebugHeader(t *testing.T) {
	var got auth.Principal
	h := AuthContext(nil)(callerHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DebugUserHeader, " alice ")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "alice" {
		t.Fatalf("expected alice, got %q", got)
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got != auth.Anonymous {
		t.Fatalf("expected anonymous, got %q", got)
	}
}

func TestAuthContext_Verifier(t *testing.T) {
	v := auth.VerifierFunc(func(_ context.Context, token string) (auth.Claims, error) {
		if token == "good" {
			return auth.Claims{UserID: "bob"}, nil
		}
		return auth.Claims{}, errors.New("bad token")
	})

	var got auth.Principal
	h := AuthContext(v)(callerHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "bob" {
		t.Fatalf("expected bob, got %q", got)
	}

	// con verifier el header de debug se ignora
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	req.Header.Set(DebugUserHeader, "mallory")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != auth.Anonymous {
		t.Fatalf("expected anonymous, got %q", got)
	}
}

func TestRequireCaller(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if _, ok := RequireCaller(rec, req); ok || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got ok=%v code=%d", ok, rec.Code)
	}
}
