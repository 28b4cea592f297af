// Package planner maps a query analysis to a retrieval strategy. Plan and
// ApplyOverrides are pure functions: no I/O, no randomness, same input gives
// same output.
package planner

import "github.com/strata-rag/strata/internal/models"

// planRule pairs a predicate over the analysis with the strategy it
// produces. The table is evaluated in order; first match wins, and the last
// rule always matches.
type planRule struct {
	matches func(a models.QueryAnalysis) bool
	build   func(a models.QueryAnalysis) models.RetrievalStrategy
}

var planTable = []planRule{
	{
		matches: func(a models.QueryAnalysis) bool { return a.Intent == models.IntentPersonal },
		build: func(a models.QueryAnalysis) models.RetrievalStrategy {
			return models.RetrievalStrategy{
				Name:         "memory_focused",
				UseMemory:    true,
				UseGraph:     true,
				FusionMethod: models.FusionMemoryPriority,
			}
		},
	},
	{
		matches: func(a models.QueryAnalysis) bool { return a.Intent == models.IntentTemporal },
		build: func(a models.QueryAnalysis) models.RetrievalStrategy {
			return models.RetrievalStrategy{
				Name:               "current_info",
				UseWeb:             true,
				UseVector:          true,
				EnableVerification: true,
				FusionMethod:       models.FusionRecencyWeighted,
			}
		},
	},
	{
		matches: func(a models.QueryAnalysis) bool { return a.Intent == models.IntentConceptual },
		build: func(a models.QueryAnalysis) models.RetrievalStrategy {
			return models.RetrievalStrategy{
				Name:               "semantic",
				UseMemory:          true,
				UseVector:          true,
				EnableVerification: true,
				FusionMethod:       models.FusionSemanticPriority,
			}
		},
	},
	{
		matches: func(a models.QueryAnalysis) bool { return a.Intent == models.IntentComparative },
		build: func(a models.QueryAnalysis) models.RetrievalStrategy {
			return models.RetrievalStrategy{
				Name:               "comparative",
				UseMemory:          true,
				UseWeb:             true,
				UseVector:          true,
				UseGraph:           true,
				EnableVerification: true,
				FusionMethod:       models.FusionComprehensive,
			}
		},
	},
	{
		// Complexity catch-all: sits after the intent rules but before the
		// default, so a complex factual query gets the full fan-out.
		matches: func(a models.QueryAnalysis) bool { return a.Complexity == models.ComplexityComplex },
		build: func(a models.QueryAnalysis) models.RetrievalStrategy {
			return models.RetrievalStrategy{
				Name:               "deep_research",
				UseMemory:          true,
				UseWeb:             true,
				UseVector:          true,
				UseGraph:           true,
				EnableVerification: true,
				NeedsExpansion:     true,
				FusionMethod:       models.FusionAgenticSynthesis,
			}
		},
	},
	{
		matches: func(a models.QueryAnalysis) bool { return true },
		build: func(a models.QueryAnalysis) models.RetrievalStrategy {
			return models.RetrievalStrategy{
				Name:               "standard",
				UseWeb:             true,
				UseVector:          true,
				EnableVerification: true,
				FusionMethod:       models.FusionWeighted,
			}
		},
	},
}

// Plan derives the retrieval strategy for one analysis.
func Plan(a models.QueryAnalysis) models.RetrievalStrategy {
	for _, r := range planTable {
		if r.matches(a) {
			s := r.build(a)
			s.LayerPriority = buildPriority(s)
			return s
		}
	}
	// Unreachable: the last rule always matches.
	return models.RetrievalStrategy{}
}

// ApplyOverrides flips the layer-enable booleans the caller supplied and
// rebuilds the priority list from the result. Fusion method and
// verification are never touched by overrides.
func ApplyOverrides(s models.RetrievalStrategy, opts *models.LayerOptions) models.RetrievalStrategy {
	if opts == nil {
		return s
	}
	if opts.Memory != nil {
		s.UseMemory = *opts.Memory
	}
	if opts.Web != nil {
		s.UseWeb = *opts.Web
	}
	if opts.Vector != nil {
		s.UseVector = *opts.Vector
	}
	if opts.Graph != nil {
		s.UseGraph = *opts.Graph
	}
	s.LayerPriority = buildPriority(s)
	return s
}

// buildPriority lists the enabled layers in the fixed canonical order.
func buildPriority(s models.RetrievalStrategy) []string {
	priority := []string{}
	if s.UseMemory {
		priority = append(priority, models.LayerMemory)
	}
	if s.UseWeb {
		priority = append(priority, models.LayerWeb)
	}
	if s.UseVector {
		priority = append(priority, models.LayerVector)
	}
	if s.UseGraph {
		priority = append(priority, models.LayerGraph)
	}
	return priority
}
