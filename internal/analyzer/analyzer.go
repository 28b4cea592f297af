// Package analyzer classifies a raw query into intent, complexity, and
// retrieval requirements. Deterministic rules run first; a completion-model
// call refines the result only when rule confidence is low. Analyze never
// fails: every internal error degrades to a usable default analysis.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/strata-rag/strata/internal/models"
)

// fastPathConfidence is the rule confidence above which no model call is
// made.
const fastPathConfidence = 0.8

// ModelClient is the completion-model dependency, satisfied by llm.Client.
type ModelClient interface {
	CompleteJSON(ctx context.Context, prompt string, out any) error
}

type Analyzer struct {
	llm    ModelClient
	logger *slog.Logger
}

func New(llm ModelClient, logger *slog.Logger) *Analyzer {
	return &Analyzer{llm: llm, logger: logger}
}

// DefaultAnalysis is the low-confidence result used when analysis itself
// breaks: treat the query as factual, assume fresh info and verification
// are wanted.
func DefaultAnalysis() models.QueryAnalysis {
	return models.QueryAnalysis{
		Intent:               models.IntentFactual,
		Confidence:           0.5,
		Entities:             []string{},
		Complexity:           models.ComplexityMedium,
		QueryType:            models.QueryTypeFactual,
		RequiresCurrentInfo:  true,
		RequiresVerification: true,
		SuggestedStrategy:    "standard",
	}
}

// Analyze classifies the query. The conversational context is currently
// unused by the rules but is part of the contract for the model fallback.
func (a *Analyzer) Analyze(ctx context.Context, query string, _ *models.QueryContext) (analysis models.QueryAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("analyzer panic recovered", "panic", r)
			analysis = DefaultAnalysis()
		}
	}()

	lower := strings.ToLower(strings.TrimSpace(query))
	tokens := tokenize(lower)

	var ruled models.QueryAnalysis
	for _, r := range ruleTable {
		if r.matches(lower, tokens) {
			ruled = r.build(lower, tokens)
			break
		}
	}
	ruled.Entities = extractEntities(tokens)

	if ruled.Confidence > fastPathConfidence {
		return ruled
	}

	if a.llm == nil {
		return ruled
	}
	refined, err := a.refine(ctx, query, ruled)
	if err != nil {
		a.logger.Warn("model classification failed, keeping rule result", "error", err)
		return ruled
	}
	return refined
}

const classifyPrompt = `Classify this search query. Respond with only a JSON object of the form
{"intent": "personal|factual|conceptual|comparative|temporal", "complexity": "simple|medium|complex", "requiresPersonalContext": bool, "requiresCurrentInfo": bool, "requiresVerification": bool}

Query: %s`

type modelClassification struct {
	Intent                  string `json:"intent"`
	Complexity              string `json:"complexity"`
	RequiresPersonalContext bool   `json:"requiresPersonalContext"`
	RequiresCurrentInfo     bool   `json:"requiresCurrentInfo"`
	RequiresVerification    bool   `json:"requiresVerification"`
}

// refine merges one structured model classification over the rule-based
// result. Invalid enum values from the model are ignored field by field.
func (a *Analyzer) refine(ctx context.Context, query string, ruled models.QueryAnalysis) (models.QueryAnalysis, error) {
	var mc modelClassification
	if err := a.llm.CompleteJSON(ctx, fmt.Sprintf(classifyPrompt, query), &mc); err != nil {
		return ruled, err
	}

	merged := ruled
	if intent := models.Intent(mc.Intent); intent.IsValid() {
		merged.Intent = intent
		// Vague stays vague so the expander still triggers.
		if merged.QueryType != models.QueryTypeVague {
			merged.QueryType = models.QueryType(intent)
		}
	}
	if complexity := models.Complexity(mc.Complexity); complexity.IsValid() {
		merged.Complexity = complexity
	}
	merged.RequiresPersonalContext = mc.RequiresPersonalContext
	merged.RequiresCurrentInfo = mc.RequiresCurrentInfo
	merged.RequiresVerification = mc.RequiresVerification
	return merged, nil
}
