// Package expander rewrites vague or underspecified queries into several
// more specific variants with one completion-model call. Expand never
// fails: the worst case is getting back just the original query.
package expander

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/strata-rag/strata/internal/models"
)

const (
	shortQueryLen = 20
	maxRewrites   = 5
	maxTurns      = 3
)

var vagueTokens = map[string]bool{
	"that":  true,
	"thing": true,
	"stuff": true,
	"it":    true,
	"this":  true,
}

var questionWords = []string{"what", "when", "where", "who", "why", "how", "which"}

// ModelClient is the completion-model dependency, satisfied by llm.Client.
type ModelClient interface {
	CompleteJSON(ctx context.Context, prompt string, out any) error
}

type Expander struct {
	llm    ModelClient
	logger *slog.Logger
}

func New(llm ModelClient, logger *slog.Logger) *Expander {
	return &Expander{llm: llm, logger: logger}
}

// ShouldExpand reports whether a query is worth rewriting: short, carrying
// a vague token, or missing any question word.
func ShouldExpand(query string) bool {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < shortQueryLen {
		return true
	}

	lower := strings.ToLower(trimmed)
	for _, t := range strings.Fields(lower) {
		if vagueTokens[t] {
			return true
		}
	}

	for _, w := range questionWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	return true
}

const expandPrompt = `Rewrite this search query into 3-5 more specific variants. Respond with only a JSON array of strings.

Query: %s%s`

// Expand returns the original query followed by up to maxRewrites model
// rewrites. Any model failure falls back to just the original.
func (e *Expander) Expand(ctx context.Context, query string, qctx *models.QueryContext) []string {
	if !ShouldExpand(query) {
		return []string{query}
	}
	if e.llm == nil {
		return []string{query}
	}

	var rewrites []string
	prompt := fmt.Sprintf(expandPrompt, query, contextBlock(qctx))
	if err := e.llm.CompleteJSON(ctx, prompt, &rewrites); err != nil {
		e.logger.Warn("query expansion failed", "error", err)
		return []string{query}
	}

	expanded := []string{query}
	seen := map[string]bool{strings.ToLower(strings.TrimSpace(query)): true}
	for _, r := range rewrites {
		r = strings.TrimSpace(r)
		key := strings.ToLower(r)
		if r == "" || seen[key] {
			continue
		}
		seen[key] = true
		expanded = append(expanded, r)
		if len(expanded) > maxRewrites {
			break
		}
	}
	return expanded
}

// contextBlock renders the last few turns and any user preferences for the
// expansion prompt.
func contextBlock(qctx *models.QueryContext) string {
	if qctx == nil {
		return ""
	}

	var b strings.Builder
	turns := qctx.RecentTurns
	if len(turns) > maxTurns {
		turns = turns[len(turns)-maxTurns:]
	}
	if len(turns) > 0 {
		b.WriteString("\n\nRecent conversation:")
		for _, t := range turns {
			fmt.Fprintf(&b, "\n%s: %s", t.Role, t.Content)
		}
	}
	if len(qctx.Preferences) > 0 {
		b.WriteString("\n\nUser preferences:")
		for k, v := range qctx.Preferences {
			fmt.Fprintf(&b, "\n%s: %s", k, v)
		}
	}
	return b.String()
}
