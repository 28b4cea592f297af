package models

// Intent classifies what a query is fundamentally asking for.
type Intent string

const (
	IntentPersonal    Intent = "personal"
	IntentFactual     Intent = "factual"
	IntentConceptual  Intent = "conceptual"
	IntentComparative Intent = "comparative"
	IntentTemporal    Intent = "temporal"
)

var ValidIntents = map[Intent]bool{
	IntentPersonal:    true,
	IntentFactual:     true,
	IntentConceptual:  true,
	IntentComparative: true,
	IntentTemporal:    true,
}

func (i Intent) IsValid() bool {
	return ValidIntents[i]
}

// QueryType extends the intent set with "vague" for queries that need
// expansion before they are worth retrieving against.
type QueryType string

const (
	QueryTypePersonal    QueryType = "personal"
	QueryTypeFactual     QueryType = "factual"
	QueryTypeConceptual  QueryType = "conceptual"
	QueryTypeComparative QueryType = "comparative"
	QueryTypeTemporal    QueryType = "temporal"
	QueryTypeVague       QueryType = "vague"
)

// Complexity estimates how much retrieval work a query deserves.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

func (c Complexity) IsValid() bool {
	return c == ComplexitySimple || c == ComplexityMedium || c == ComplexityComplex
}

// FusionMethod names the cross-layer ranking strategy. It is a label consumed
// by a future ranking stage, not an algorithm in this service.
type FusionMethod string

const (
	FusionWeighted         FusionMethod = "weighted"
	FusionMemoryPriority   FusionMethod = "memory_priority"
	FusionRecencyWeighted  FusionMethod = "recency_weighted"
	FusionSemanticPriority FusionMethod = "semantic_priority"
	FusionComprehensive    FusionMethod = "comprehensive"
	FusionAgenticSynthesis FusionMethod = "agentic_synthesis"
)

// Layer names, also used as keys in synthesis breakdowns and priority lists.
const (
	LayerMemory = "memory"
	LayerWeb    = "web"
	LayerVector = "vector"
	LayerGraph  = "graph"
)

// Turn is one prior conversational exchange supplied by the caller.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QueryContext carries optional conversational context for a request.
type QueryContext struct {
	RecentTurns []Turn            `json:"recentTurns,omitempty"`
	Summary     string            `json:"summary,omitempty"`
	Preferences map[string]string `json:"preferences,omitempty"`
}

// LayerOptions lets the caller force layers on or off. Nil means "no
// override" for that layer.
type LayerOptions struct {
	Memory *bool `json:"memory,omitempty"`
	Web    *bool `json:"web,omitempty"`
	Vector *bool `json:"vector,omitempty"`
	Graph  *bool `json:"graph,omitempty"`
}

// HybridRequest is the payload for POST /v1/rag/hybrid.
type HybridRequest struct {
	UserID     string        `json:"userId"`
	ThreadID   string        `json:"threadId,omitempty"`
	Query      string        `json:"query"`
	Context    *QueryContext `json:"context,omitempty"`
	Options    *LayerOptions `json:"options,omitempty"`
	MaxResults int           `json:"maxResults,omitempty"`
}

// TemporalContext captures what the analyzer learned about time references
// in the query.
type TemporalContext struct {
	HasDate      bool   `json:"hasDate"`
	RelativeTime string `json:"relativeTime,omitempty"`
	DateText     string `json:"dateText,omitempty"`
}

// QueryAnalysis is the read-only classification of one query. Created once
// per request and never mutated afterwards.
type QueryAnalysis struct {
	Intent                  Intent           `json:"intent"`
	Confidence              float64          `json:"confidence"`
	Entities                []string         `json:"entities"`
	TemporalContext         *TemporalContext `json:"temporalContext,omitempty"`
	Complexity              Complexity       `json:"complexity"`
	QueryType               QueryType        `json:"queryType"`
	RequiresPersonalContext bool             `json:"requiresPersonalContext"`
	RequiresCurrentInfo     bool             `json:"requiresCurrentInfo"`
	RequiresVerification    bool             `json:"requiresVerification"`
	SuggestedStrategy       string           `json:"suggestedStrategy"`
}

// RetrievalStrategy is the plan derived from a QueryAnalysis: which layers
// run, in what priority order, and how their results should be fused.
type RetrievalStrategy struct {
	Name               string       `json:"name"`
	UseMemory          bool         `json:"useMemory"`
	UseWeb             bool         `json:"useWeb"`
	UseVector          bool         `json:"useVector"`
	UseGraph           bool         `json:"useGraph"`
	EnableVerification bool         `json:"enableVerification"`
	NeedsExpansion     bool         `json:"needsExpansion"`
	LayerPriority      []string     `json:"layerPriority"`
	FusionMethod       FusionMethod `json:"fusionMethod"`
}
