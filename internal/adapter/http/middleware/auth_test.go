package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/pocketledger/internal/infrastructure/auth"
)

func protected(manager *auth.TokenManager) http.Handler {
	return AuthMiddleware(manager)(RequireWriteScope(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFromContext(r.Context()); !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.WriteHeader(http.StatusOK)
	})))
}

func TestAuthMiddleware(t *testing.T) {
	manager := auth.NewTokenManager("secret", time.Hour)

	readToken, err := manager.Generate("owner", auth.ScopeRead)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	writeToken, err := manager.Generate("owner", auth.ScopeWrite)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	tests := []struct {
		name     string
		method   string
		header   string
		expected int
	}{
		{"missing header", http.MethodGet, "", http.StatusUnauthorized},
		{"wrong scheme", http.MethodGet, "Basic abc", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "Bearer nope", http.StatusUnauthorized},
		{"read token reads", http.MethodGet, "Bearer " + readToken, http.StatusOK},
		{"read token cannot write", http.MethodPost, "Bearer " + readToken, http.StatusForbidden},
		{"write token writes", http.MethodDelete, "Bearer " + writeToken, http.StatusOK},
	}

	handler := protected(manager)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/transactions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rr.Code)
			}
		})
	}
}

func TestRequireWriteScope_WithoutClaims(t *testing.T) {
	rr := httptest.NewRecorder()
	RequireWriteScope(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not be called")
	})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
