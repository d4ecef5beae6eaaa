// Package app arma el servicio: store, services por módulo y router.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pet-adoption-shelter/internal/config"
	"pet-adoption-shelter/internal/domain/listings"
	"pet-adoption-shelter/internal/domain/requests"
	"pet-adoption-shelter/internal/domain/shelter"
	"pet-adoption-shelter/internal/platform/clock"
	"pet-adoption-shelter/internal/platform/logger"
	"pet-adoption-shelter/internal/platform/metrics"
	"pet-adoption-shelter/internal/ports/auth"
	"pet-adoption-shelter/internal/ports/storage"
	"pet-adoption-shelter/internal/router"
)

// App es el servicio armado. Handler solo se usa en serve; la CLI usa los services.
type App struct {
	Handler http.Handler

	Store    storage.Store
	Shelter  *shelter.Service
	Listings *listings.Service
	Requests *requests.Service
	Metrics  *metrics.Metrics
	Owner    auth.Principal
}

// New abre el store según cfg.Storage, registra el owner y arma el router.
func New(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}

	store, err := OpenStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}

	a, err := build(ctx, cfg, store, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return a, nil
}

func build(ctx context.Context, cfg config.Config, store storage.Store, log logger.Logger) (*App, error) {
	now := clock.Monotonic(time.Now)
	m := metrics.New()

	shelterSvc := shelter.NewService(store, now)
	shelterSvc.SetDefaultCapacity(uint16(cfg.Shelter.DefaultCapacity))

	listingsSvc := listings.NewService(store, shelterSvc,
		listings.WithClock(now),
		listings.WithMetrics(m),
	)
	requestsSvc := requests.NewService(store, shelterSvc, listingsSvc,
		requests.WithClock(now),
		requests.WithMetrics(m),
	)
	listingsSvc.SetRequestLookup(requestsSvc)

	configured := auth.ParsePrincipal(cfg.Shelter.Owner)
	owner, err := shelterSvc.Init(ctx, configured)
	if err != nil {
		return nil, fmt.Errorf("init shelter owner (set shelter.owner on first start): %w", err)
	}
	if !configured.IsAnonymous() && configured != owner {
		log.Warn("shelter owner is immutable, ignoring configured owner", map[string]any{
			"stored":     owner.String(),
			"configured": configured.String(),
		})
	}

	verifier, err := NewVerifier(cfg.Auth)
	if err != nil {
		return nil, err
	}
	if verifier == nil {
		log.Warn("auth mode debug: callers are taken from the X-Debug-User-ID header", nil)
	}

	handler := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Logger:       log,
		Metrics:      m,
		Shelter:      shelterSvc,
		Listings:     listingsSvc,
		Requests:     requestsSvc,
	})

	log.Info("shelter ready", map[string]any{
		"owner":   owner.String(),
		"storage": cfg.Storage.Driver,
		"auth":    cfg.Auth.Mode,
	})

	return &App{
		Handler:  handler,
		Store:    store,
		Shelter:  shelterSvc,
		Listings: listingsSvc,
		Requests: requestsSvc,
		Metrics:  m,
		Owner:    owner,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.Store == nil {
		return nil
	}
	return a.Store.Close()
}
