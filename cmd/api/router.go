package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/folio/folio/internal/config"
	"github.com/folio/folio/internal/handler"
	"github.com/folio/folio/internal/middleware"
)

type routerDeps struct {
	handler  *handler.Handler
	health   *handler.HealthHandler
	visits   *handler.VisitHandler
	contacts *handler.ContactHandler
	metrics  *handler.MetricsHandler
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger, "/healthz", "/readyz", "/metrics"))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)
	r.Get("/metrics", d.metrics.Metrics)
	r.Get("/", d.handler.Info)

	r.Route("/api", func(r chi.Router) {
		r.Post("/visit", d.visits.Record)
		r.Get("/stats", d.visits.Stats)
		r.Post("/contact", d.contacts.Submit)
		r.Get("/contacts", d.contacts.List)
		r.Get("/health", d.health.Health)
	})

	r.NotFound(d.handler.NotFound)
	r.MethodNotAllowed(d.handler.MethodNotAllowed)

	return r
}
