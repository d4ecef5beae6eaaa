package app

import (
	"fmt"

	"pet-adoption-shelter/internal/adapters/auth/jwtauth"
	"pet-adoption-shelter/internal/adapters/auth/remote"
	"pet-adoption-shelter/internal/config"
	"pet-adoption-shelter/internal/ports/auth"
)

// NewVerifier devuelve nil en modo debug (AuthContext acepta X-Debug-User-ID).
func NewVerifier(cfg config.AuthConfig) (auth.AuthVerifier, error) {
	switch cfg.Mode {
	case config.AuthDebug, "":
		return nil, nil
	case config.AuthJWT:
		return jwtauth.NewVerifier(cfg.JWTSecret)
	case config.AuthRemote:
		return remote.NewVerifier(remote.Config{
			BaseURL: cfg.Remote.BaseURL,
			APIKey:  cfg.Remote.APIKey,
		})
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}
