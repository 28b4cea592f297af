package analyzer

import (
	"regexp"
	"strings"

	"github.com/strata-rag/strata/internal/models"
)

// The analyzer runs an ordered table of (predicate, build) pairs against the
// lower-cased query. First match wins; the final factual rule always
// matches. Each predicate is independently testable.
type rule struct {
	name    string
	matches func(q string, tokens []string) bool
	build   func(q string, tokens []string) models.QueryAnalysis
}

var ruleTable = []rule{
	{name: "personal", matches: matchPersonal, build: buildPersonal},
	{name: "temporal", matches: matchTemporal, build: buildTemporal},
	{name: "comparative", matches: matchComparative, build: buildComparative},
	{name: "vague", matches: matchVague, build: buildVague},
	{name: "factual", matches: matchAlways, build: buildFactual},
}

var personalPhrases = []string{
	"what did i",
	"what have i",
	"did i say",
	"i prefer",
	"my preference",
	"remember",
	"i mentioned",
	"i told you",
	"i said",
}

var temporalWords = map[string]bool{
	"when":      true,
	"latest":    true,
	"today":     true,
	"yesterday": true,
	"now":       true,
	"recent":    true,
	"recently":  true,
	"current":   true,
	"currently": true,
}

var comparativeTokens = map[string]bool{
	"vs":         true,
	"versus":     true,
	"compare":    true,
	"compared":   true,
	"comparison": true,
	"better":     true,
}

var vagueTerms = map[string]bool{
	"that":  true,
	"thing": true,
	"stuff": true,
	"what":  true,
	"how":   true,
}

var questionWords = map[string]bool{
	"what":  true,
	"when":  true,
	"where": true,
	"who":   true,
	"why":   true,
	"how":   true,
	"which": true,
}

// relativeVocab is ordered so multi-word phrases win over their substrings.
var relativeVocab = []string{
	"last week", "this week", "last month", "this month", "last year",
	"this year", "today", "yesterday", "tomorrow", "latest", "recently",
	"recent", "now",
}

var (
	isoDateRe = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	usDateRe  = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
)

func matchPersonal(q string, _ []string) bool {
	for _, phrase := range personalPhrases {
		if strings.Contains(q, phrase) {
			return true
		}
	}
	return false
}

func buildPersonal(q string, tokens []string) models.QueryAnalysis {
	return models.QueryAnalysis{
		Intent:                  models.IntentPersonal,
		Confidence:              0.9,
		Complexity:              estimateComplexity(tokens),
		QueryType:               models.QueryTypePersonal,
		RequiresPersonalContext: true,
		SuggestedStrategy:       "memory_focused",
	}
}

func matchTemporal(_ string, tokens []string) bool {
	for _, t := range tokens {
		if temporalWords[t] {
			return true
		}
	}
	return false
}

func buildTemporal(q string, tokens []string) models.QueryAnalysis {
	return models.QueryAnalysis{
		Intent:               models.IntentTemporal,
		Confidence:           0.9,
		TemporalContext:      extractTemporalContext(q),
		Complexity:           estimateComplexity(tokens),
		QueryType:            models.QueryTypeTemporal,
		RequiresCurrentInfo:  true,
		RequiresVerification: true,
		SuggestedStrategy:    "current_info",
	}
}

func matchComparative(q string, tokens []string) bool {
	if strings.Contains(q, "difference between") {
		return true
	}
	for _, t := range tokens {
		if comparativeTokens[t] {
			return true
		}
	}
	return false
}

func buildComparative(q string, tokens []string) models.QueryAnalysis {
	return models.QueryAnalysis{
		Intent:               models.IntentComparative,
		Confidence:           0.85,
		Complexity:           estimateComplexity(tokens),
		QueryType:            models.QueryTypeComparative,
		RequiresVerification: true,
		SuggestedStrategy:    "comparative_analysis",
	}
}

func matchVague(q string, tokens []string) bool {
	if len(strings.TrimSpace(q)) < 10 {
		return true
	}
	count := 0
	for _, t := range tokens {
		if vagueTerms[t] {
			count++
		}
	}
	return count >= 2
}

func buildVague(q string, tokens []string) models.QueryAnalysis {
	return models.QueryAnalysis{
		Intent:            models.IntentFactual,
		Confidence:        0.6,
		Complexity:        estimateComplexity(tokens),
		QueryType:         models.QueryTypeVague,
		SuggestedStrategy: "expand_first",
	}
}

func matchAlways(_ string, _ []string) bool { return true }

func buildFactual(q string, tokens []string) models.QueryAnalysis {
	return models.QueryAnalysis{
		Intent:            models.IntentFactual,
		Confidence:        0.7,
		Complexity:        estimateComplexity(tokens),
		QueryType:         models.QueryTypeFactual,
		SuggestedStrategy: "standard",
	}
}

// estimateComplexity maps word count and question-word count to a bucket:
// fewer than 5 words with exactly one question word is simple; more than 2
// question words or more than 15 words is complex; everything else medium.
func estimateComplexity(tokens []string) models.Complexity {
	questions := 0
	for _, t := range tokens {
		if questionWords[t] {
			questions++
		}
	}
	switch {
	case len(tokens) < 5 && questions == 1:
		return models.ComplexitySimple
	case questions > 2 || len(tokens) > 15:
		return models.ComplexityComplex
	default:
		return models.ComplexityMedium
	}
}

// extractTemporalContext pulls a relative-time tag or explicit date out of
// the query. Returns nil when neither is present.
func extractTemporalContext(q string) *models.TemporalContext {
	tc := &models.TemporalContext{}

	for _, phrase := range relativeVocab {
		if containsToken(q, phrase) {
			tc.RelativeTime = phrase
			break
		}
	}

	if m := isoDateRe.FindString(q); m != "" {
		tc.HasDate = true
		tc.DateText = m
	} else if m := usDateRe.FindString(q); m != "" {
		tc.HasDate = true
		tc.DateText = m
	}

	if !tc.HasDate && tc.RelativeTime == "" {
		return nil
	}
	return tc
}

// containsToken reports whether phrase appears in q bounded by non-letters.
func containsToken(q, phrase string) bool {
	idx := strings.Index(q, phrase)
	for idx >= 0 {
		before := idx == 0 || !isWordChar(q[idx-1])
		afterIdx := idx + len(phrase)
		after := afterIdx >= len(q) || !isWordChar(q[afterIdx])
		if before && after {
			return true
		}
		next := strings.Index(q[idx+1:], phrase)
		if next < 0 {
			return false
		}
		idx = idx + 1 + next
	}
	return false
}

func isWordChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "about": true,
	"what": true, "when": true, "where": true, "who": true, "why": true,
	"how": true, "which": true, "did": true, "does": true, "are": true,
	"was": true, "were": true, "has": true, "have": true, "had": true,
	"can": true, "could": true, "should": true, "would": true, "will": true,
	"say": true, "said": true, "tell": true, "told": true, "you": true,
	"your": true, "that": true, "this": true, "thing": true, "stuff": true,
}

// extractEntities keeps non-stopword tokens of at least 3 characters in
// their original order, deduplicated.
func extractEntities(tokens []string) []string {
	entities := []string{}
	seen := make(map[string]bool)
	for _, t := range tokens {
		if len(t) < 3 || stopwords[t] || seen[t] {
			continue
		}
		seen[t] = true
		entities = append(entities, t)
	}
	return entities
}

// tokenize splits the lower-cased query into alphanumeric runs.
func tokenize(q string) []string {
	return strings.FieldsFunc(q, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}
