package knowledge

import (
	"sync"

	apperrors "github.com/aihub/rag-go/internal/errors"
)

// CorpusStore is the process-wide accumulation of ingested chunks and their
// embeddings, kept as parallel append-only slices. chunks[i] and
// embeddings[i] always describe the same position i; the pair is appended
// atomically under the write lock so readers never observe mismatched
// lengths. There is no removal operation.
type CorpusStore struct {
	mu         sync.RWMutex
	chunks     []string
	embeddings [][]float32
}

// CorpusSnapshot is a consistent read-only view of the corpus taken at a
// point in time. Both slices have the same length; index equals position.
type CorpusSnapshot struct {
	Chunks     []string
	Embeddings [][]float32
}

// Size returns the number of chunks in the snapshot.
func (s CorpusSnapshot) Size() int {
	return len(s.Chunks)
}

// NewCorpusStore creates an empty store.
func NewCorpusStore() *CorpusStore {
	return &CorpusStore{}
}

// Append adds one document's chunks and embeddings as a unit. Positions
// continue the corpus sequence without gaps. The whole batch is appended or
// none of it.
func (s *CorpusStore) Append(chunks []string, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return apperrors.NewDimensionMismatchError(len(chunks), len(embeddings))
	}
	if len(chunks) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunks...)
	s.embeddings = append(s.embeddings, embeddings...)
	return nil
}

// Snapshot returns a consistent paired view of the corpus. The returned
// slices are capped with full slice expressions, so a concurrent Append can
// only ever grow a fresh backing array or write past the snapshot's cap;
// the snapshotted elements themselves are immutable.
func (s *CorpusStore) Snapshot() CorpusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.chunks)
	return CorpusSnapshot{
		Chunks:     s.chunks[:n:n],
		Embeddings: s.embeddings[:n:n],
	}
}

// Size returns the current number of stored chunks.
func (s *CorpusStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}
