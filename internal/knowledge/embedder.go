package knowledge

import (
	"context"
	"strings"

	apperrors "github.com/aihub/rag-go/internal/errors"
	openai "github.com/sashabaranov/go-openai"
)

// Embedder turns texts into dense vectors. Implementations return one vector
// per input text, in input order.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Ready() bool
}

// NoopEmbedder is the placeholder used when no provider is configured.
type NoopEmbedder struct{}

func (n *NoopEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, apperrors.NewProviderError("embedding", nil).WithDetails("embedding provider not configured")
}

func (n *NoopEmbedder) Ready() bool {
	return false
}

// OpenAIEmbedder calls an OpenAI-compatible embeddings API. Pointing BaseURL
// at the Mistral endpoint with the mistral-embed model is the default setup.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
}

// NewOpenAIEmbedder creates an embedder for the given endpoint. An empty API
// key yields a NoopEmbedder.
func NewOpenAIEmbedder(apiKey, baseURL, model string) Embedder {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return &NoopEmbedder{}
	}
	if model == "" {
		model = "mistral-embed"
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// EmbedBatch embeds all texts in a single provider call. Failures propagate
// as ProviderError without retries.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: texts,
	})
	if err != nil {
		return nil, apperrors.NewProviderError("embedding", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, apperrors.NewProviderError("embedding", nil).
			WithDetails("provider returned a different number of vectors than inputs")
	}

	vectors := make([][]float32, len(resp.Data))
	for i, item := range resp.Data {
		vector := make([]float32, len(item.Embedding))
		copy(vector, item.Embedding)
		vectors[i] = vector
	}
	return vectors, nil
}

func (e *OpenAIEmbedder) Ready() bool {
	return e.client != nil
}
