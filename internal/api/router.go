package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/strata-rag/strata/internal/metrics"
)

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(
	processor QueryProcessor,
	vector HealthChecker,
	recorder *metrics.Recorder,
	apiKey string,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on ALL routes including /health)
	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(vector, recorder, logger)
	metricsH := NewMetricsHandler(recorder)
	hybridH := NewHybridHandler(processor, logger)

	// Unauthenticated routes
	r.Get("/health", healthH.Health)
	r.Get("/metrics", metricsH.Metrics)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(apiKey))

		r.Route("/v1/rag", func(r chi.Router) {
			r.Post("/hybrid", hybridH.Process)
		})
	})

	return r
}
