package knowledge

// ScoredCandidate is a retrieved chunk with its relevance score. Position is
// the chunk's index in the corpus-wide sequence; it back-references the
// corpus and stays valid for the process lifetime.
type ScoredCandidate struct {
	Text     string  `json:"text"`
	Score    float64 `json:"score"`
	Position int     `json:"position"`
}
