package knowledge

import "strings"

// Short greeting/closing vocabulary; queries containing any of these as a
// substring skip retrieval entirely.
var greetings = []string{"hello", "hi", "hey", "thanks", "thank you", "bye"}

// NeedsRetrieval decides from query text alone whether retrieval is
// warranted. Greetings never trigger a search; otherwise a query needs
// strictly more than two whitespace-separated tokens. This is a conservative
// heuristic, not language understanding: single-word or two-word substantive
// queries are treated as not needing retrieval.
func NeedsRetrieval(query string) bool {
	normalized := strings.ToLower(strings.TrimSpace(query))

	for _, greeting := range greetings {
		if strings.Contains(normalized, greeting) {
			return false
		}
	}
	return len(strings.Fields(normalized)) > 2
}

// Expansions applied in a fixed order so the transform is deterministic.
var queryExpansions = []struct {
	abbr string
	full string
}{
	{"q&a", "question and answer"},
	{"info", "information"},
}

// TransformQuery normalizes the query before retrieval: trim, lowercase and
// expand common abbreviations.
func TransformQuery(query string) string {
	query = strings.ToLower(strings.TrimSpace(query))
	for _, expansion := range queryExpansions {
		query = strings.ReplaceAll(query, expansion.abbr, expansion.full)
	}
	return query
}
