package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestVerifier_RoundTrip(t *testing.T) {
	v, err := NewVerifier("s3cret")
	if err != nil {
		t.Fatalf("NewVerifier error: %v", err)
	}

	tok, err := Sign("s3cret", "alice", jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	c, err := v.Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if c.UserID != "alice" {
		t.Fatalf("expected alice, got %q", c.UserID)
	}
}

func TestVerifier_Rejects(t *testing.T) {
	v, _ := NewVerifier("s3cret")
	ctx := context.Background()

	other, _ := Sign("other", "alice", jwt.RegisteredClaims{})
	if _, err := v.Verify(ctx, other); err == nil {
		t.Fatalf("expected signature error")
	}

	expired, _ := Sign("s3cret", "alice", jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	if _, err := v.Verify(ctx, expired); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}

	noSub, _ := Sign("s3cret", "", jwt.RegisteredClaims{})
	if _, err := v.Verify(ctx, noSub); !errors.Is(err, ErrSubjectRequired) {
		t.Fatalf("expected ErrSubjectRequired, got %v", err)
	}

	// alg none / HS512 no están permitidos
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{Subject: "alice"}).SignedString([]byte("s3cret"))
	if _, err := v.Verify(ctx, hs512); err == nil {
		t.Fatalf("expected method error")
	}
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	if _, err := NewVerifier(" "); !errors.Is(err, ErrSecretRequired) {
		t.Fatalf("expected ErrSecretRequired, got %v", err)
	}
}
