package models

// Synthesis summarizes what the orchestrator actually did for one request.
type Synthesis struct {
	LayerBreakdown map[string]int `json:"layerBreakdown"`
	FusionMethod   FusionMethod   `json:"fusionMethod"`
	// Expansions beyond the original query are computed but not yet fanned
	// out per layer; they are carried here for observability.
	Expansions []string `json:"expansions,omitempty"`
}

// Verification is a stub for the future fact-verification phase.
type Verification struct {
	Performed bool   `json:"performed"`
	Status    string `json:"status"`
}

// Conflict is reserved for the future conflict-resolution phase.
type Conflict struct {
	Sources     []string `json:"sources"`
	Description string   `json:"description"`
}

// HybridResponse is the fused answer for one request. All four result slices
// are always non-nil, even when empty.
type HybridResponse struct {
	MemoryResults  []MemoryResult `json:"memoryResults"`
	WebResults     []WebResult    `json:"webResults"`
	VectorResults  []VectorResult `json:"vectorResults"`
	GraphResults   []GraphResult  `json:"graphResults"`
	Synthesis      Synthesis      `json:"synthesis"`
	Confidence     float64        `json:"confidence"`
	Verification   Verification   `json:"verification"`
	Conflicts      []Conflict     `json:"conflicts"`
	Strategy       string         `json:"strategy"`
	LatencyMs      int64          `json:"latencyMs"`
	LayersExecuted []string       `json:"layersExecuted"`
	Cached         bool           `json:"cached"`
}

// HealthResponse is returned from GET /health.
type HealthResponse struct {
	Status     string            `json:"status"`
	Service    string            `json:"service"`
	Version    string            `json:"version"`
	Components map[string]string `json:"components"`
	Metrics    HealthMetrics     `json:"metrics"`
	Timestamp  string            `json:"timestamp"`
}

// HealthMetrics is the request-level summary embedded in /health.
type HealthMetrics struct {
	TotalRequests int64   `json:"totalRequests"`
	AvgLatency    float64 `json:"avgLatency"`
}
