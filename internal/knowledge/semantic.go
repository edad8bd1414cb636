package knowledge

import (
	"math"
	"sort"
)

// CosineSimilarity computes the cosine similarity of two vectors,
// accumulating in float64. It is defined as 0 when the vectors differ in
// length or either norm is zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// semanticRank scores every chunk in the snapshot against the query vector
// and returns the topK candidates.
func semanticRank(snap CorpusSnapshot, queryVector []float32, topK int) []ScoredCandidate {
	if snap.Size() == 0 {
		return nil
	}

	candidates := make([]ScoredCandidate, snap.Size())
	for i, embedding := range snap.Embeddings {
		candidates[i] = ScoredCandidate{
			Text:     snap.Chunks[i],
			Score:    CosineSimilarity(queryVector, embedding),
			Position: i,
		}
	}
	return selectTop(candidates, topK)
}

// selectTop orders candidates by score descending, breaking ties by lower
// position, and truncates to topK.
func selectTop(candidates []ScoredCandidate, topK int) []ScoredCandidate {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score == candidates[j].Score {
			return candidates[i].Position < candidates[j].Position
		}
		return candidates[i].Score > candidates[j].Score
	})
	if topK > 0 && topK < len(candidates) {
		candidates = candidates[:topK]
	}
	return candidates
}
