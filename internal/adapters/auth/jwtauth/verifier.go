// Package jwtauth verifica bearer tokens HS256 firmados con un secreto compartido.
package jwtauth

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"pet-adoption-shelter/internal/ports/auth"
)

var (
	ErrSecretRequired  = errors.New("jwt secret not configured")
	ErrSubjectRequired = errors.New("subject claim required")
)

// Claims: sub es el principal; email y tenant son opcionales.
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email,omitempty"`
	TenantID string `json:"tenant_id,omitempty"`
}

type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(secret string) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretRequired
	}
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}, nil
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	claims := &Claims{}
	parsed, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, err
	}
	if !parsed.Valid {
		return auth.Claims{}, errors.New("invalid token")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return auth.Claims{}, ErrSubjectRequired
	}

	return auth.Claims{
		UserID:   strings.TrimSpace(claims.Subject),
		Email:    claims.Email,
		TenantID: claims.TenantID,
	}, nil
}

// Sign emite un token para sub (lo usa la CLI para pruebas locales).
func Sign(secret, sub string, c jwt.RegisteredClaims) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", ErrSecretRequired
	}
	c.Subject = sub
	return jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{RegisteredClaims: c}).SignedString([]byte(secret))
}
