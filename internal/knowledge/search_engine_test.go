package knowledge

import (
	"context"
	"testing"

	apperrors "github.com/aihub/rag-go/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder returns canned vectors keyed by text.
type stubEmbedder struct {
	vectors map[string][]float32
	calls   int
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	s.calls++
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vector, ok := s.vectors[text]
		if !ok {
			return nil, apperrors.NewProviderError("embedding", nil).WithDetails("no stub vector for " + text)
		}
		out[i] = vector
	}
	return out, nil
}

func (s *stubEmbedder) Ready() bool { return true }

func newTestEngine(t *testing.T, embedder Embedder, chunks []string, embeddings [][]float32) (*HybridSearchEngine, *CorpusStore) {
	t.Helper()
	store := NewCorpusStore()
	if len(chunks) > 0 {
		require.NoError(t, store.Append(chunks, embeddings))
	}
	return NewHybridSearchEngine(store, embedder, 0.7, 0.3, 2, 5), store
}

func TestHybridSearch_EmptyCorpusSkipsProvider(t *testing.T) {
	embedder := &stubEmbedder{}
	engine, _ := newTestEngine(t, embedder, nil, nil)

	results, err := engine.Search(context.Background(), "anything at all", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, embedder.calls, "empty corpus must not call the embedding provider")
}

func TestHybridSearch_EndToEndScenario(t *testing.T) {
	// Chunks 0 and 1 are near-identical in embedding space, chunk 2 is
	// dissimilar. The query matches chunk 0 semantically and overlaps
	// chunks 0 and 1 lexically.
	chunks := []string{
		"cats are mammals",
		"dogs are mammals",
		"python is a language",
	}
	embeddings := [][]float32{
		{1, 0, 0},
		{0.98, 0.2, 0},
		{0, 0, 1},
	}
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"what are cats": {1, 0, 0},
	}}
	engine, _ := newTestEngine(t, embedder, chunks, embeddings)

	results, err := engine.Search(context.Background(), "what are cats", 2)
	require.NoError(t, err)
	require.Equal(t, 2, len(results))

	assert.Equal(t, 0, results[0].Position, "chunk 0 must rank first")
	assert.Equal(t, 1, results[1].Position, "chunk 1 must be surfaced despite lower semantic rank")
	assert.Equal(t, 1, embedder.calls, "the query is embedded exactly once")
}

func TestHybridSearch_FusedScoreSumsWeightedContributions(t *testing.T) {
	chunks := []string{"alpha topic", "unrelated text"}
	embeddings := [][]float32{{1, 0}, {0, 1}}
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"alpha": {1, 0},
	}}
	engine, _ := newTestEngine(t, embedder, chunks, embeddings)

	semantic, err := engine.SemanticSearch(context.Background(), "alpha", 4)
	require.NoError(t, err)
	keyword := engine.KeywordSearch("alpha", 4)

	semanticScore := 0.0
	for _, candidate := range semantic {
		if candidate.Position == 0 {
			semanticScore = candidate.Score
		}
	}
	keywordScore := 0.0
	for _, candidate := range keyword {
		if candidate.Position == 0 {
			keywordScore = candidate.Score
		}
	}
	require.Greater(t, semanticScore, 0.0)
	require.Greater(t, keywordScore, 0.0)

	results, err := engine.Search(context.Background(), "alpha", 2)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, 0, results[0].Position)
	assert.InDelta(t, 0.7*semanticScore+0.3*keywordScore, results[0].Score, 1e-9)
}

func TestHybridSearch_OutputLength(t *testing.T) {
	chunks := []string{"one fish", "two fish", "red fish", "blue fish"}
	embeddings := [][]float32{{1, 0}, {0.9, 0.1}, {0.8, 0.2}, {0.7, 0.3}}
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"counting fish": {1, 0},
	}}
	engine, _ := newTestEngine(t, embedder, chunks, embeddings)

	results, err := engine.Search(context.Background(), "counting fish", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, len(results))

	// topK beyond the surfaced pool returns every distinct position.
	results, err = engine.Search(context.Background(), "counting fish", 50)
	require.NoError(t, err)
	assert.Equal(t, 4, len(results))
}

func TestHybridSearch_ProviderErrorPropagates(t *testing.T) {
	chunks := []string{"some chunk"}
	embeddings := [][]float32{{1}}
	embedder := &stubEmbedder{vectors: map[string][]float32{}} // no stub vector: every embed fails
	engine, _ := newTestEngine(t, embedder, chunks, embeddings)

	_, err := engine.Search(context.Background(), "unknown query", 5)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeProvider, apperrors.GetAppError(err).Code)
}

func TestHybridSearch_DefaultTopK(t *testing.T) {
	chunks := make([]string, 8)
	embeddings := make([][]float32, 8)
	for i := range chunks {
		chunks[i] = "filler chunk"
		embeddings[i] = []float32{1, float32(i)}
	}
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"filler": {1, 0},
	}}
	engine, _ := newTestEngine(t, embedder, chunks, embeddings)

	// topK <= 0 falls back to the engine default of 5.
	results, err := engine.Search(context.Background(), "filler", 0)
	require.NoError(t, err)
	assert.Equal(t, 5, len(results))
}
