// Package server assembles the HTTP surface: a chi router over the label
// matching handlers, wrapped in the standard middleware chain.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"labelsort/internal/config"
	"labelsort/internal/handlers"
)

// NewRouter builds the chi router with all API routes registered.
func NewRouter(cfg *config.Config) chi.Router {
	r := chi.NewRouter()

	labelHandler := handlers.NewLabelHandler(cfg)
	healthHandler := handlers.NewHealthHandler()

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HealthCheck)
		r.Post("/match", labelHandler.Match)
		r.Post("/sort", labelHandler.Sort)
	})

	return r
}

// NewHandler wraps the router in the standard middleware chain.
func NewHandler(cfg *config.Config) http.Handler {
	return Chain(
		NewRouter(cfg),
		LoggingMiddleware,
		RecoveryMiddleware,
		CORSMiddleware,
		SecurityMiddleware,
	)
}
