// Package orchestrator runs the hybrid retrieval pipeline for one request:
// analyze, conditionally expand, plan, fan out to the enabled layers in
// parallel, and fuse the results into a single confidence-scored response.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/strata-rag/strata/internal/cache"
	"github.com/strata-rag/strata/internal/embedding"
	"github.com/strata-rag/strata/internal/layers"
	"github.com/strata-rag/strata/internal/metrics"
	"github.com/strata-rag/strata/internal/models"
	"github.com/strata-rag/strata/internal/planner"
)

// ValidationError marks a structurally invalid request. It is the only
// error class ProcessQuery surfaces to the caller besides genuinely
// unexpected failures.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// QueryAnalyzer classifies queries; satisfied by analyzer.Analyzer.
type QueryAnalyzer interface {
	Analyze(ctx context.Context, query string, qctx *models.QueryContext) models.QueryAnalysis
}

// QueryExpander rewrites queries; satisfied by expander.Expander.
type QueryExpander interface {
	Expand(ctx context.Context, query string, qctx *models.QueryContext) []string
}

// One interface per layer so tests can fail any single source.
type MemoryRetriever interface {
	Retrieve(ctx context.Context, req layers.Request) []models.MemoryResult
}

type WebRetriever interface {
	Retrieve(ctx context.Context, req layers.Request) []models.WebResult
}

type VectorRetriever interface {
	Retrieve(ctx context.Context, req layers.Request) []models.VectorResult
}

type GraphRetriever interface {
	Retrieve(ctx context.Context, req layers.Request) []models.GraphResult
}

type Orchestrator struct {
	analyzer   QueryAnalyzer
	expander   QueryExpander
	memory     MemoryRetriever
	web        WebRetriever
	vector     VectorRetriever
	graph      GraphRetriever
	queryCache cache.Cache
	recorder   *metrics.Recorder
	maxResults int
	logger     *slog.Logger
}

func New(
	analyzer QueryAnalyzer,
	expander QueryExpander,
	memory MemoryRetriever,
	web WebRetriever,
	vector VectorRetriever,
	graph GraphRetriever,
	queryCache cache.Cache,
	recorder *metrics.Recorder,
	maxResults int,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		analyzer:   analyzer,
		expander:   expander,
		memory:     memory,
		web:        web,
		vector:     vector,
		graph:      graph,
		queryCache: queryCache,
		recorder:   recorder,
		maxResults: maxResults,
		logger:     logger,
	}
}

// ProcessQuery answers one request. Downstream failures are absorbed into
// empty layer results; only a structurally invalid request returns an
// error.
func (o *Orchestrator) ProcessQuery(ctx context.Context, req *models.HybridRequest) (*models.HybridResponse, error) {
	start := time.Now()

	if req.UserID == "" {
		return nil, &ValidationError{Field: "userId"}
	}
	if req.Query == "" {
		return nil, &ValidationError{Field: "query"}
	}

	key := queryCacheKey(req.UserID, req.Query)
	if cached := o.cachedResponse(ctx, key); cached != nil {
		cached.Cached = true
		cached.LatencyMs = time.Since(start).Milliseconds()
		o.recorder.Record(metrics.CacheHits, 1)
		o.recordRequest(start)
		return cached, nil
	}

	analysis := o.analyzer.Analyze(ctx, req.Query, req.Context)

	// Expansion is computed for vague/complex queries but only the original
	// query is fanned out; the extra variants ride along on the synthesis
	// until per-expansion retrieval lands.
	expansions := []string{req.Query}
	if analysis.QueryType == models.QueryTypeVague || analysis.Complexity == models.ComplexityComplex {
		expansions = o.expander.Expand(ctx, req.Query, req.Context)
	}

	strategy := applyPlan(analysis, req.Options)

	resp := o.retrieve(ctx, req, strategy)
	resp.Confidence = fuseConfidence(resp)
	resp.Strategy = strategy.Name
	resp.LayersExecuted = strategy.LayerPriority
	resp.Synthesis = models.Synthesis{
		LayerBreakdown: map[string]int{
			models.LayerMemory: len(resp.MemoryResults),
			models.LayerWeb:    len(resp.WebResults),
			models.LayerVector: len(resp.VectorResults),
			models.LayerGraph:  len(resp.GraphResults),
		},
		FusionMethod: strategy.FusionMethod,
	}
	if len(expansions) > 1 {
		resp.Synthesis.Expansions = expansions[1:]
	}
	resp.Verification = models.Verification{Performed: false, Status: "not_implemented"}
	resp.Conflicts = []models.Conflict{}
	resp.LatencyMs = time.Since(start).Milliseconds()

	o.storeResponse(ctx, key, resp)
	o.recordRequest(start)
	o.logger.Info("query processed",
		"userId", req.UserID,
		"strategy", strategy.Name,
		"layers", strategy.LayerPriority,
		"confidence", resp.Confidence,
		"latency_ms", resp.LatencyMs,
	)
	return resp, nil
}

// retrieve fans out one goroutine per enabled layer and joins them all. No
// early return on partial results: the orchestrator waits for the slowest
// enabled layer, each bounded by its own internal timeout. Layers never
// error, so the group exists purely for the fan-out/fan-in shape.
func (o *Orchestrator) retrieve(ctx context.Context, req *models.HybridRequest, strategy models.RetrievalStrategy) *models.HybridResponse {
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = o.maxResults
	}
	lreq := layers.Request{
		UserID:     req.UserID,
		ThreadID:   req.ThreadID,
		Query:      req.Query,
		MaxResults: maxResults,
	}

	resp := &models.HybridResponse{
		MemoryResults: []models.MemoryResult{},
		WebResults:    []models.WebResult{},
		VectorResults: []models.VectorResult{},
		GraphResults:  []models.GraphResult{},
	}

	g, gctx := errgroup.WithContext(ctx)
	if strategy.UseMemory {
		g.Go(func() error {
			resp.MemoryResults = o.memory.Retrieve(gctx, lreq)
			return nil
		})
	}
	if strategy.UseWeb {
		g.Go(func() error {
			resp.WebResults = o.web.Retrieve(gctx, lreq)
			return nil
		})
	}
	if strategy.UseVector {
		g.Go(func() error {
			resp.VectorResults = o.vector.Retrieve(gctx, lreq)
			return nil
		})
	}
	if strategy.UseGraph {
		g.Go(func() error {
			resp.GraphResults = o.graph.Retrieve(gctx, lreq)
			return nil
		})
	}
	_ = g.Wait()

	for name, count := range map[string]int{
		models.LayerMemory: len(resp.MemoryResults),
		models.LayerWeb:    len(resp.WebResults),
		models.LayerVector: len(resp.VectorResults),
	} {
		o.recorder.Record("layer_results_"+name, float64(count))
	}
	return resp
}

// fuseConfidence is the arithmetic mean of every scored result across the
// memory, web, and vector layers, or 0 when all three are empty.
func fuseConfidence(resp *models.HybridResponse) float64 {
	sum := 0.0
	n := 0
	for _, r := range resp.MemoryResults {
		sum += r.RelevanceScore
		n++
	}
	for _, r := range resp.WebResults {
		sum += r.RelevanceScore
		n++
	}
	for _, r := range resp.VectorResults {
		sum += r.Similarity
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (o *Orchestrator) cachedResponse(ctx context.Context, key string) *models.HybridResponse {
	data, ok := o.queryCache.Get(ctx, key)
	if !ok {
		return nil
	}
	var resp models.HybridResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		o.logger.Warn("dropping undecodable cached response", "error", err)
		return nil
	}
	return &resp
}

func (o *Orchestrator) storeResponse(ctx context.Context, key string, resp *models.HybridResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		o.logger.Warn("failed to marshal response for cache", "error", err)
		return
	}
	o.queryCache.Set(ctx, key, data)
}

func (o *Orchestrator) recordRequest(start time.Time) {
	o.recorder.Record(metrics.RequestsTotal, 1)
	o.recorder.Record(metrics.RequestLatencyMs, float64(time.Since(start).Milliseconds()))
}

// queryCacheKey is (userId, normalized query): results are user-scoped, so
// two users never share a cached response.
func queryCacheKey(userID, query string) string {
	return "q:" + userID + ":" + embedding.ContentHash(embedding.Normalize(query))
}

func applyPlan(analysis models.QueryAnalysis, opts *models.LayerOptions) models.RetrievalStrategy {
	return planner.ApplyOverrides(planner.Plan(analysis), opts)
}
