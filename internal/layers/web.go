package layers

import (
	"context"
	"log/slog"
	"time"

	"github.com/strata-rag/strata/internal/models"
	"github.com/strata-rag/strata/internal/websearch"
)

// Searcher is the web-search-proxy dependency, satisfied by
// websearch.Client.
type Searcher interface {
	Search(ctx context.Context, query, threadID string) (*websearch.SearchResponse, error)
}

// WebLayer retrieves live web results and scores their relevance locally,
// since the proxy returns unranked keyword hits.
type WebLayer struct {
	client    Searcher
	authority *AuthorityTable
	logger    *slog.Logger
}

func NewWebLayer(client Searcher, authority *AuthorityTable, logger *slog.Logger) *WebLayer {
	return &WebLayer{client: client, authority: authority, logger: logger}
}

func (l *WebLayer) Name() string { return models.LayerWeb }

func (l *WebLayer) Retrieve(ctx context.Context, req Request) (results []models.WebResult) {
	results = []models.WebResult{}
	defer func() {
		if r := recover(); r != nil {
			l.logger.Warn("layer panic recovered", "layer", l.Name(), "panic", r)
			results = []models.WebResult{}
		}
	}()

	resp, err := l.client.Search(ctx, req.Query, req.ThreadID)
	if err != nil {
		l.logger.Warn("web search failed", "error", err)
		return results
	}

	now := time.Now().Unix()
	for _, r := range resp.Results {
		content := r.Title
		if r.Snippet != "" {
			content = r.Title + "\n" + r.Snippet
		}
		results = append(results, models.WebResult{
			Content: content,
			Source: models.WebSource{
				URL:  r.URL,
				Host: r.Host,
				Date: r.Date,
				Tier: l.authority.TierFor(r.Host),
			},
			RelevanceScore: scoreWebResult(req.Query, r.Title, r.Snippet, r.Date, r.Host, l.authority),
			FetchedAt:      now,
		})
		if req.MaxResults > 0 && len(results) >= req.MaxResults {
			break
		}
	}
	return results
}
