package knowledge

import (
	"context"
	"sort"
)

// HybridSearchEngine fuses semantic (embedding cosine) and keyword (TF-IDF)
// retrieval over the corpus into a single ranking.
type HybridSearchEngine struct {
	store               *CorpusStore
	embedder            Embedder
	semanticWeight      float64
	keywordWeight       float64
	candidateMultiplier int
	defaultTopK         int
}

// NewHybridSearchEngine applies the reference defaults for any zero option:
// weights 0.7/0.3, candidate pool widening x2, top-k 5.
func NewHybridSearchEngine(store *CorpusStore, embedder Embedder, semanticWeight, keywordWeight float64, candidateMultiplier, topK int) *HybridSearchEngine {
	if semanticWeight <= 0 && keywordWeight <= 0 {
		semanticWeight = 0.7
		keywordWeight = 0.3
	}
	if candidateMultiplier < 1 {
		candidateMultiplier = 2
	}
	if topK < 1 {
		topK = 5
	}
	return &HybridSearchEngine{
		store:               store,
		embedder:            embedder,
		semanticWeight:      semanticWeight,
		keywordWeight:       keywordWeight,
		candidateMultiplier: candidateMultiplier,
		defaultTopK:         topK,
	}
}

// SemanticSearch ranks stored chunks by embedding cosine similarity to the
// query. The query is embedded with a single provider call; an empty corpus
// returns no results without calling the provider.
func (e *HybridSearchEngine) SemanticSearch(ctx context.Context, query string, topK int) ([]ScoredCandidate, error) {
	return e.semanticSearch(ctx, e.store.Snapshot(), query, topK)
}

func (e *HybridSearchEngine) semanticSearch(ctx context.Context, snap CorpusSnapshot, query string, topK int) ([]ScoredCandidate, error) {
	if snap.Size() == 0 {
		return nil, nil
	}

	vectors, err := e.embedder.EmbedBatch(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return semanticRank(snap, vectors[0], topK), nil
}

// KeywordSearch ranks stored chunks by TF-IDF cosine similarity to the query.
// The vector space is rebuilt from the current corpus on every call.
func (e *HybridSearchEngine) KeywordSearch(query string, topK int) []ScoredCandidate {
	return keywordRank(e.store.Snapshot(), query, topK)
}

// fusedEntry tracks a position's accumulated score and the order in which it
// was first surfaced by either scorer. Semantic candidates are processed
// before keyword candidates, so at equal fused scores semantic-only hits rank
// ahead of keyword-only hits. This tie policy is deterministic but arbitrary.
type fusedEntry struct {
	position  int
	score     float64
	firstSeen int
}

// Search runs both scorers with a widened candidate pool (topK x multiplier)
// against one corpus snapshot, sums the weighted scores per position and
// returns the topK fused candidates. A position surfaced by only one scorer
// keeps just that scorer's weighted contribution.
func (e *HybridSearchEngine) Search(ctx context.Context, query string, topK int) ([]ScoredCandidate, error) {
	if topK < 1 {
		topK = e.defaultTopK
	}

	snap := e.store.Snapshot()
	if snap.Size() == 0 {
		return nil, nil
	}

	poolSize := topK * e.candidateMultiplier
	semanticResults, err := e.semanticSearch(ctx, snap, query, poolSize)
	if err != nil {
		return nil, err
	}
	keywordResults := keywordRank(snap, query, poolSize)

	byPosition := make(map[int]*fusedEntry)
	order := make([]*fusedEntry, 0, len(semanticResults)+len(keywordResults))

	for _, candidate := range semanticResults {
		entry := &fusedEntry{
			position:  candidate.Position,
			score:     e.semanticWeight * candidate.Score,
			firstSeen: len(order),
		}
		byPosition[candidate.Position] = entry
		order = append(order, entry)
	}
	for _, candidate := range keywordResults {
		if entry, ok := byPosition[candidate.Position]; ok {
			entry.score += e.keywordWeight * candidate.Score
			continue
		}
		entry := &fusedEntry{
			position:  candidate.Position,
			score:     e.keywordWeight * candidate.Score,
			firstSeen: len(order),
		}
		byPosition[candidate.Position] = entry
		order = append(order, entry)
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].score == order[j].score {
			return order[i].firstSeen < order[j].firstSeen
		}
		return order[i].score > order[j].score
	})
	if topK < len(order) {
		order = order[:topK]
	}

	results := make([]ScoredCandidate, len(order))
	for i, entry := range order {
		results[i] = ScoredCandidate{
			Text:     snap.Chunks[entry.position],
			Score:    entry.score,
			Position: entry.position,
		}
	}
	return results, nil
}
