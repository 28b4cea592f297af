package layers

import "strings"

// Web relevance scoring weights. The score is a weighted sum over a 0.5
// base: title and snippet word overlap, a recency hint from the result's
// date string, and an authority bonus, capped at 1.0.
const (
	webBaseScore      = 0.5
	titleWeight       = 0.3
	snippetWeight     = 0.15
	minSnippetLen     = 50
	recencyHourBonus  = 0.1
	recencyDayBonus   = 0.05
	authorityBonus    = 0.1
)

// scoreWebResult computes the relevance score for one raw web hit.
func scoreWebResult(query, title, snippet, date, host string, table *AuthorityTable) float64 {
	score := webBaseScore

	queryWords := strings.Fields(strings.ToLower(query))
	if len(queryWords) > 0 {
		score += titleWeight * matchedFraction(queryWords, title)
		if len(snippet) > minSnippetLen {
			score += snippetWeight * matchedFraction(queryWords, snippet)
		}
	}

	score += recencyBonus(date)

	if table.IsAuthoritative(host) {
		score += authorityBonus
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// matchedFraction is the fraction of query words present in text.
func matchedFraction(queryWords []string, text string) float64 {
	lower := strings.ToLower(text)
	matched := 0
	for _, w := range queryWords {
		if strings.Contains(lower, w) {
			matched++
		}
	}
	return float64(matched) / float64(len(queryWords))
}

// recencyBonus reads the proxy's human-readable date string ("3 hours ago",
// "2 days ago") for a freshness hint.
func recencyBonus(date string) float64 {
	lower := strings.ToLower(date)
	switch {
	case strings.Contains(lower, "hour") || strings.Contains(lower, "minute"):
		return recencyHourBonus
	case strings.Contains(lower, "day"):
		return recencyDayBonus
	default:
		return 0
	}
}
