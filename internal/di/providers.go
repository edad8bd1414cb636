package di

import (
	"fmt"

	"github.com/aihub/rag-go/internal/config"
	"github.com/aihub/rag-go/internal/knowledge"
	"github.com/aihub/rag-go/internal/logger"
	"github.com/aihub/rag-go/internal/services"
	"go.uber.org/dig"
	"go.uber.org/zap"
)

// RegisterProviders wires the full pipeline graph into the container. Config
// and logger must be initialized before invoking anything.
func RegisterProviders(container *dig.Container) error {
	providers := []interface{}{
		func() (*config.Config, error) {
			cfg := config.GetAppConfig()
			if cfg == nil {
				return nil, fmt.Errorf("config not loaded")
			}
			return cfg, nil
		},
		func() *zap.Logger {
			return logger.GetLogger()
		},
		knowledge.NewCorpusStore,
		knowledge.NewParserRegistry,
		func(cfg *config.Config) (*knowledge.Chunker, error) {
			return knowledge.NewChunker(cfg.Knowledge.ChunkSize, cfg.Knowledge.ChunkOverlap)
		},
		func(cfg *config.Config) knowledge.Embedder {
			return knowledge.NewOpenAIEmbedder(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.EmbeddingModel)
		},
		func(cfg *config.Config) knowledge.ChatProvider {
			return knowledge.NewOpenAIChatProvider(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.ChatModel, cfg.AI.MaxTokens, cfg.AI.Temperature)
		},
		func(cfg *config.Config, store *knowledge.CorpusStore, embedder knowledge.Embedder) *knowledge.HybridSearchEngine {
			return knowledge.NewHybridSearchEngine(
				store,
				embedder,
				cfg.Retrieval.SemanticWeight,
				cfg.Retrieval.KeywordWeight,
				cfg.Retrieval.CandidateMultiplier,
				cfg.Retrieval.TopK,
			)
		},
		services.NewMetricsService,
		services.NewRAGService,
	}

	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return err
		}
	}
	return nil
}
