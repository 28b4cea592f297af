package layers

import (
	"context"
	"log/slog"

	"github.com/strata-rag/strata/internal/models"
)

// GraphLayer is the placeholder for graph-relationship traversal, a future
// phase. It participates in planning and fan-out so the response shape is
// stable, but always returns an empty result list.
type GraphLayer struct {
	logger *slog.Logger
}

func NewGraphLayer(logger *slog.Logger) *GraphLayer {
	return &GraphLayer{logger: logger}
}

func (l *GraphLayer) Name() string { return models.LayerGraph }

func (l *GraphLayer) Retrieve(ctx context.Context, req Request) []models.GraphResult {
	l.logger.Debug("graph retrieval not implemented, returning empty", "query", req.Query)
	return []models.GraphResult{}
}
