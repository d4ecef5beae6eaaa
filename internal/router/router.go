package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pet-adoption-shelter/docs"
	"pet-adoption-shelter/internal/domain/listings"
	"pet-adoption-shelter/internal/domain/requests"
	"pet-adoption-shelter/internal/domain/shelter"
	"pet-adoption-shelter/internal/middleware"
	"pet-adoption-shelter/internal/platform/logger"
	"pet-adoption-shelter/internal/platform/metrics"
	"pet-adoption-shelter/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev: X-Debug-User-ID)

	Logger  logger.Logger
	Metrics *metrics.Metrics // nil => sin /metrics

	Shelter  *shelter.Service
	Listings *listings.Service
	Requests *requests.Service
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	// RequestLog envuelve a Recoverer: un panic queda logueado y contado como 500.
	r.Use(middleware.RequestLog(opts.Logger, opts.Metrics))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	shelter.RegisterRoutes(r, opts.Shelter, opts.Listings)
	listings.RegisterRoutes(r, opts.Listings)
	requests.RegisterRoutes(r, opts.Requests)

	return r
}
