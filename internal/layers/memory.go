package layers

import (
	"context"
	"log/slog"
	"time"

	"github.com/strata-rag/strata/internal/memoryclient"
	"github.com/strata-rag/strata/internal/models"
)

// Recaller is the memory-service dependency, satisfied by
// memoryclient.Client.
type Recaller interface {
	Recall(ctx context.Context, params memoryclient.RecallParams) (*memoryclient.RecallResponse, error)
}

// MemoryLayer retrieves durable conversational memory. Memory is scoped per
// user: a request without a userId gets an empty result immediately, and a
// recall that exceeds the deadline is an empty result, not an error.
type MemoryLayer struct {
	client   Recaller
	deadline time.Duration
	logger   *slog.Logger
}

func NewMemoryLayer(client Recaller, deadline time.Duration, logger *slog.Logger) *MemoryLayer {
	return &MemoryLayer{client: client, deadline: deadline, logger: logger}
}

func (l *MemoryLayer) Name() string { return models.LayerMemory }

func (l *MemoryLayer) Retrieve(ctx context.Context, req Request) (results []models.MemoryResult) {
	results = []models.MemoryResult{}
	defer func() {
		if r := recover(); r != nil {
			l.logger.Warn("layer panic recovered", "layer", l.Name(), "panic", r)
			results = []models.MemoryResult{}
		}
	}()

	if req.UserID == "" {
		return results
	}

	ctx, cancel := context.WithTimeout(ctx, l.deadline)
	defer cancel()

	resp, err := l.client.Recall(ctx, memoryclient.RecallParams{
		UserID:     req.UserID,
		ThreadID:   req.ThreadID,
		MaxItems:   req.MaxResults,
		DeadlineMs: int(l.deadline.Milliseconds()),
	})
	if err != nil {
		// Deadline expiry lands here too; a slow memory service only costs
		// this layer its results.
		l.logger.Warn("memory recall failed", "error", err)
		return results
	}

	for _, m := range resp.Memories {
		results = append(results, models.MemoryResult{
			ID:             m.ID,
			Content:        m.Content,
			RelevanceScore: clampScore(m.Score),
			CreatedAt:      m.CreatedAt,
			Provenance:     m.Source,
		})
	}
	return results
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
