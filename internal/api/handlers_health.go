package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/strata-rag/strata/internal/metrics"
	"github.com/strata-rag/strata/internal/models"
)

const (
	serviceName    = "strata"
	serviceVersion = "0.3.0"
)

// HealthChecker pings one downstream component, satisfied by
// vectorstore.QdrantClient.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	vector   HealthChecker
	recorder *metrics.Recorder
	logger   *slog.Logger
}

func NewHealthHandler(vector HealthChecker, recorder *metrics.Recorder, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{vector: vector, recorder: recorder, logger: logger}
}

// Health handles GET /health. The service is degraded, not down, when the
// vector index is unreachable: requests still succeed with fewer layers.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := models.HealthResponse{
		Status:     "healthy",
		Service:    serviceName,
		Version:    serviceVersion,
		Components: map[string]string{},
		Metrics: models.HealthMetrics{
			TotalRequests: h.recorder.TotalRequests(),
			AvgLatency:    h.recorder.AvgLatency(),
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.vector.HealthCheck(ctx); err != nil {
		h.logger.Warn("vector index unhealthy", "error", err)
		resp.Components["vector"] = "unhealthy"
		resp.Status = "degraded"
	} else {
		resp.Components["vector"] = "healthy"
	}

	writeJSON(w, http.StatusOK, resp)
}

// MetricsHandler serves GET /metrics.
type MetricsHandler struct {
	recorder *metrics.Recorder
}

func NewMetricsHandler(recorder *metrics.Recorder) *MetricsHandler {
	return &MetricsHandler{recorder: recorder}
}

func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.recorder.Summary())
}
