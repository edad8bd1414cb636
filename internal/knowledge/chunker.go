package knowledge

import (
	"strings"

	apperrors "github.com/aihub/rag-go/internal/errors"
)

// Chunker splits document text into overlapping fixed-size word windows.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

// NewChunker validates the window sizing. The step between windows is
// chunkSize-overlap; it must be positive or splitting would never advance.
func NewChunker(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, apperrors.NewConfigurationError("chunk size must be positive")
	}
	if overlap < 0 {
		return nil, apperrors.NewConfigurationError("chunk overlap must not be negative")
	}
	if overlap >= chunkSize {
		return nil, apperrors.NewConfigurationError("chunk overlap must be smaller than chunk size")
	}
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: overlap,
	}, nil
}

// Split cuts text into word windows of chunkSize words stepping by
// chunkSize-overlap. The final window may be shorter. Empty or all-whitespace
// input yields no chunks.
func (c *Chunker) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.chunkSize - c.chunkOverlap
	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + c.chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
