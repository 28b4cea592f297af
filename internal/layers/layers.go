// Package layers adapts each external knowledge source (memory, web,
// vector, graph) into a common retrieval shape. Every layer fails soft:
// timeouts, remote errors, and panics are logged and become an empty result
// list, never an error the orchestrator has to handle.
package layers

// Request is what one layer needs to retrieve against a single query.
type Request struct {
	UserID     string
	ThreadID   string
	Query      string
	MaxResults int
}
