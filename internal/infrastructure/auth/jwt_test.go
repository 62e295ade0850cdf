package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iho/pocketledger/internal/infrastructure/auth"
)

func TestTokenManagerGenerateAndVerify(t *testing.T) {
	t.Parallel()

	manager := auth.NewTokenManager("super-secret", time.Minute)

	token, err := manager.Generate("owner", auth.ScopeWrite)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("expected token to verify, got %v", err)
	}

	if claims.Subject != "owner" || claims.Scope != auth.ScopeWrite {
		t.Fatalf("expected claims to match, got %+v", claims)
	}
}

func TestTokenManagerGenerateRejectsUnknownScope(t *testing.T) {
	t.Parallel()

	manager := auth.NewTokenManager("secret", time.Minute)

	if _, err := manager.Generate("owner", auth.Scope("admin")); !errors.Is(err, auth.ErrInvalidScope) {
		t.Fatalf("expected ErrInvalidScope, got %v", err)
	}
}

func TestTokenManagerVerifyErrors(t *testing.T) {
	t.Parallel()

	manager := auth.NewTokenManager("secret", time.Minute)

	expiredClaims := auth.Claims{
		Scope: auth.ScopeRead,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "owner",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
		},
	}

	expiredToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	if _, err := manager.Verify(expiredToken); !errors.Is(err, auth.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}

	otherManager := auth.NewTokenManager("other-secret", time.Minute)
	if _, err := otherManager.Verify(expiredToken); err == nil || errors.Is(err, auth.ErrExpiredToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}

	if _, err := manager.Verify("not-a-token"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected failure for malformed token, got %v", err)
	}

	badScope, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Scope: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	if _, err := manager.Verify(badScope); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for unknown scope, got %v", err)
	}
}

func TestScopeAllows(t *testing.T) {
	t.Parallel()

	if !auth.ScopeWrite.Allows(auth.ScopeRead) || !auth.ScopeWrite.Allows(auth.ScopeWrite) {
		t.Fatalf("write scope should allow everything")
	}
	if !auth.ScopeRead.Allows(auth.ScopeRead) || auth.ScopeRead.Allows(auth.ScopeWrite) {
		t.Fatalf("read scope should only allow reads")
	}
}
