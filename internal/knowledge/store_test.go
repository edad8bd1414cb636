package knowledge

import (
	"fmt"
	"sync"
	"testing"

	apperrors "github.com/aihub/rag-go/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpusStore_Append(t *testing.T) {
	store := NewCorpusStore()

	err := store.Append(
		[]string{"first", "second"},
		[][]float32{{1, 0}, {0, 1}},
	)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Size())

	// A second append continues the position sequence without gaps.
	err = store.Append([]string{"third"}, [][]float32{{1, 1}})
	require.NoError(t, err)

	snap := store.Snapshot()
	require.Equal(t, 3, snap.Size())
	assert.Equal(t, "first", snap.Chunks[0])
	assert.Equal(t, "third", snap.Chunks[2])
	assert.Equal(t, []float32{1, 1}, snap.Embeddings[2])
}

func TestCorpusStore_AppendMismatch(t *testing.T) {
	store := NewCorpusStore()

	err := store.Append([]string{"a", "b"}, [][]float32{{1}})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeDimensionMismatch, apperrors.GetAppError(err).Code)
	assert.Equal(t, 0, store.Size())
}

func TestCorpusStore_AppendEmptyBatch(t *testing.T) {
	store := NewCorpusStore()
	require.NoError(t, store.Append(nil, nil))
	assert.Equal(t, 0, store.Size())
}

func TestCorpusStore_SnapshotIsStable(t *testing.T) {
	store := NewCorpusStore()
	require.NoError(t, store.Append([]string{"a"}, [][]float32{{1}}))

	snap := store.Snapshot()
	require.NoError(t, store.Append([]string{"b"}, [][]float32{{2}}))

	// The earlier snapshot must not observe the later append.
	assert.Equal(t, 1, snap.Size())
	assert.Equal(t, 2, store.Size())
}

// A snapshot taken during concurrent appends must never show mismatched
// chunk/embedding lengths.
func TestCorpusStore_ConcurrentAppendAndSnapshot(t *testing.T) {
	store := NewCorpusStore()

	const writers = 4
	const batches = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for b := 0; b < batches; b++ {
				chunks := []string{
					fmt.Sprintf("w%d-b%d-0", w, b),
					fmt.Sprintf("w%d-b%d-1", w, b),
				}
				embeddings := [][]float32{{float32(w)}, {float32(b)}}
				if err := store.Append(chunks, embeddings); err != nil {
					t.Error(err)
					return
				}
			}
		}(w)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		wg.Wait()
	}()

	for {
		snap := store.Snapshot()
		if len(snap.Chunks) != len(snap.Embeddings) {
			t.Fatalf("torn snapshot: %d chunks vs %d embeddings",
				len(snap.Chunks), len(snap.Embeddings))
		}
		select {
		case <-done:
			assert.Equal(t, writers*batches*2, store.Size())
			return
		default:
		}
	}
}
