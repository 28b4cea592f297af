package models

// MemoryResult is one recalled item from the durable memory service.
type MemoryResult struct {
	ID             string  `json:"id"`
	Content        string  `json:"content"`
	RelevanceScore float64 `json:"relevanceScore"`
	CreatedAt      int64   `json:"createdAt"`
	Provenance     string  `json:"provenance,omitempty"`
}

// WebSource identifies where a web result came from.
type WebSource struct {
	URL  string `json:"url"`
	Host string `json:"host"`
	Date string `json:"date,omitempty"`
	Tier string `json:"tier"`
}

// WebResult is one scored hit from the web-search proxy.
type WebResult struct {
	Content        string    `json:"content"`
	Source         WebSource `json:"source"`
	RelevanceScore float64   `json:"relevanceScore"`
	FetchedAt      int64     `json:"fetchedAt"`
}

// VectorResult is one nearest-neighbor hit from the vector index.
type VectorResult struct {
	Content     string  `json:"content"`
	Source      string  `json:"source,omitempty"`
	Similarity  float64 `json:"similarity"`
	EmbeddingID string  `json:"embeddingId"`
	RetrievedAt int64   `json:"retrievedAt"`
}

// GraphResult is the structural placeholder for the graph layer. Graph
// traversal is a future phase; the slice in HybridResponse is always present
// and currently always empty.
type GraphResult struct {
	NodeID   string  `json:"nodeId"`
	Content  string  `json:"content"`
	Relation string  `json:"relation,omitempty"`
	Score    float64 `json:"score"`
}
