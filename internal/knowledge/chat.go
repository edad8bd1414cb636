package knowledge

import (
	"context"
	"strings"

	apperrors "github.com/aihub/rag-go/internal/errors"
	openai "github.com/sashabaranov/go-openai"
)

// ChatProvider produces a single text completion for a prompt.
type ChatProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Ready() bool
}

// NoopChatProvider is the placeholder used when no provider is configured.
type NoopChatProvider struct{}

func (n *NoopChatProvider) Complete(ctx context.Context, prompt string) (string, error) {
	return "", apperrors.NewProviderError("chat completion", nil).WithDetails("chat provider not configured")
}

func (n *NoopChatProvider) Ready() bool {
	return false
}

// OpenAIChatProvider calls an OpenAI-compatible chat completions API.
type OpenAIChatProvider struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenAIChatProvider creates a chat provider for the given endpoint. An
// empty API key yields a NoopChatProvider.
func NewOpenAIChatProvider(apiKey, baseURL, model string, maxTokens int, temperature float64) ChatProvider {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return &NoopChatProvider{}
	}
	if model == "" {
		model = "mistral-small-latest"
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIChatProvider{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		maxTokens:   maxTokens,
		temperature: float32(temperature),
	}
}

// Complete sends the prompt as a single user message. Failures propagate as
// ProviderError without retries.
func (p *OpenAIChatProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", apperrors.NewProviderError("chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.NewProviderError("chat completion", nil).
			WithDetails("provider returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIChatProvider) Ready() bool {
	return p.client != nil
}
