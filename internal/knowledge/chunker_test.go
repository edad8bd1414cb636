package knowledge

import (
	"strings"
	"testing"

	apperrors "github.com/aihub/rag-go/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChunker_InvalidSizing(t *testing.T) {
	cases := []struct {
		name    string
		size    int
		overlap int
	}{
		{"zero size", 0, 0},
		{"negative size", -1, 0},
		{"negative overlap", 10, -1},
		{"overlap equals size", 10, 10},
		{"overlap exceeds size", 10, 12},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewChunker(tc.size, tc.overlap)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeConfiguration, apperrors.GetAppError(err).Code)
		})
	}
}

func TestChunker_Split(t *testing.T) {
	chunker, err := NewChunker(5, 2)
	require.NoError(t, err)

	words := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	chunks := chunker.Split(strings.Join(words, " "))

	require.Equal(t, 4, len(chunks))
	assert.Equal(t, "a b c d e", chunks[0])
	assert.Equal(t, "d e f g h", chunks[1])
	assert.Equal(t, "g h i j k", chunks[2])
	// Final chunk is shorter because fewer than size words remain.
	assert.Equal(t, "j k l", chunks[3])
}

func TestChunker_SplitEmptyInput(t *testing.T) {
	chunker, err := NewChunker(100, 20)
	require.NoError(t, err)

	assert.Empty(t, chunker.Split(""))
	assert.Empty(t, chunker.Split("   \n\t  "))
}

func TestChunker_SplitShortInput(t *testing.T) {
	chunker, err := NewChunker(100, 20)
	require.NoError(t, err)

	chunks := chunker.Split("just a few words")
	require.Equal(t, 1, len(chunks))
	assert.Equal(t, "just a few words", chunks[0])
}

// Dropping each chunk's leading overlap words and concatenating the rest must
// reconstruct the original word sequence.
func TestChunker_SplitReconstruction(t *testing.T) {
	cases := []struct {
		size    int
		overlap int
		words   int
	}{
		{5, 2, 12},
		{5, 0, 12},
		{4, 3, 17},
		{10, 2, 9},
		{3, 1, 1},
	}

	for _, tc := range cases {
		chunker, err := NewChunker(tc.size, tc.overlap)
		require.NoError(t, err)

		original := make([]string, tc.words)
		for i := range original {
			original[i] = strings.Repeat("w", i+1)
		}
		chunks := chunker.Split(strings.Join(original, " "))
		require.NotEmpty(t, chunks)

		step := tc.size - tc.overlap
		var rebuilt []string
		covered := 0
		for i, chunk := range chunks {
			start := i * step
			chunkWords := strings.Fields(chunk)
			if skip := covered - start; skip < len(chunkWords) {
				rebuilt = append(rebuilt, chunkWords[skip:]...)
				covered = start + len(chunkWords)
			}
		}
		assert.Equal(t, original, rebuilt,
			"size=%d overlap=%d words=%d", tc.size, tc.overlap, tc.words)
	}
}
