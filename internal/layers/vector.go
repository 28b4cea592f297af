package layers

import (
	"context"
	"log/slog"
	"time"

	"github.com/strata-rag/strata/internal/models"
	"github.com/strata-rag/strata/internal/vectorstore"
)

// Embedder is the embedding dependency, satisfied by embedding.Cached.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Index is the nearest-neighbor dependency, satisfied by
// vectorstore.QdrantClient.
type Index interface {
	Search(ctx context.Context, vector []float32, topK int, scoreThreshold float64, filter map[string]string) ([]vectorstore.SearchResult, error)
}

// VectorLayer retrieves by semantic similarity: embed the query, then
// nearest-neighbor search with a similarity floor. Its time bound is the sum
// of the embed call and the index search; both sub-calls fail soft.
type VectorLayer struct {
	embedder      Embedder
	index         Index
	topK          int
	minSimilarity float64
	logger        *slog.Logger
}

func NewVectorLayer(embedder Embedder, index Index, topK int, minSimilarity float64, logger *slog.Logger) *VectorLayer {
	return &VectorLayer{
		embedder:      embedder,
		index:         index,
		topK:          topK,
		minSimilarity: minSimilarity,
		logger:        logger,
	}
}

func (l *VectorLayer) Name() string { return models.LayerVector }

func (l *VectorLayer) Retrieve(ctx context.Context, req Request) (results []models.VectorResult) {
	results = []models.VectorResult{}
	defer func() {
		if r := recover(); r != nil {
			l.logger.Warn("layer panic recovered", "layer", l.Name(), "panic", r)
			results = []models.VectorResult{}
		}
	}()

	vector, err := l.embedder.Embed(ctx, req.Query)
	if err != nil {
		l.logger.Warn("query embedding failed", "error", err)
		return results
	}

	topK := l.topK
	if req.MaxResults > 0 {
		topK = req.MaxResults
	}

	// Results are filtered by threadId only: the index payload carries no
	// per-user field in the current data model, so vector hits are not
	// user-scoped the way memory recall is. Known multitenancy gap, pending
	// a product decision.
	var filter map[string]string
	if req.ThreadID != "" {
		filter = map[string]string{"threadId": req.ThreadID}
	}

	hits, err := l.index.Search(ctx, vector, topK, l.minSimilarity, filter)
	if err != nil {
		l.logger.Warn("vector search failed", "error", err)
		return results
	}

	now := time.Now().Unix()
	for _, h := range hits {
		results = append(results, models.VectorResult{
			Content:     payloadString(h.Payload, "content"),
			Source:      payloadString(h.Payload, "source"),
			Similarity:  h.Score,
			EmbeddingID: h.ID,
			RetrievedAt: now,
		})
	}
	return results
}

func payloadString(payload map[string]any, key string) string {
	if payload == nil {
		return ""
	}
	if s, ok := payload[key].(string); ok {
		return s
	}
	return ""
}
