package config

import (
	"os"
	"strings"

	apperrors "github.com/aihub/rag-go/internal/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Knowledge KnowledgeConfig
	Retrieval RetrievalConfig
	AI        AIConfig
	Upload    UploadConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// KnowledgeConfig controls document chunking.
type KnowledgeConfig struct {
	ChunkSize    int
	ChunkOverlap int
}

// RetrievalConfig controls the hybrid retrieval pipeline. The candidate
// multiplier widens the per-scorer pool before fusion so chunks strong in one
// method but outside the other's raw top-k are not lost.
type RetrievalConfig struct {
	TopK                int
	SimilarityThreshold float64
	SemanticWeight      float64
	KeywordWeight       float64
	CandidateMultiplier int
}

type AIConfig struct {
	APIKey         string
	BaseURL        string
	EmbeddingModel string
	ChatModel      string
	MaxTokens      int
	Temperature    float64
}

type UploadConfig struct {
	MaxSize      int64
	AllowedTypes []string
}

var AppConfig *Config

// GetAppConfig returns the loaded configuration.
func GetAppConfig() *Config {
	return AppConfig
}

// LoadConfig populates AppConfig from defaults, an optional config file and
// RAG_-prefixed environment variables.
func LoadConfig() error {
	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.env", "development")

	viper.SetDefault("knowledge.chunk_size", 500)
	viper.SetDefault("knowledge.chunk_overlap", 50)

	viper.SetDefault("retrieval.top_k", 5)
	viper.SetDefault("retrieval.similarity_threshold", 0.5)
	viper.SetDefault("retrieval.semantic_weight", 0.7)
	viper.SetDefault("retrieval.keyword_weight", 0.3)
	viper.SetDefault("retrieval.candidate_multiplier", 2)

	viper.SetDefault("ai.base_url", "https://api.mistral.ai/v1")
	viper.SetDefault("ai.embedding_model", "mistral-embed")
	viper.SetDefault("ai.chat_model", "mistral-small-latest")
	viper.SetDefault("ai.max_tokens", 2000)
	viper.SetDefault("ai.temperature", 0.7)

	viper.SetDefault("upload.max_size", 15728640) // 15MB
	viper.SetDefault("upload.allowed_types", []string{".pdf", ".txt", ".md", ".docx"})

	viper.SetEnvPrefix("RAG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Optional config file, e.g. CONFIG_FILE=./config.yaml
	if cfgFile := os.Getenv("CONFIG_FILE"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return apperrors.NewConfigurationError("failed to read config file").WithCause(err)
		}
	}

	// Bare API key env vars take precedence for compatibility with the
	// provider SDK conventions.
	if key := os.Getenv("MISTRAL_API_KEY"); key != "" {
		viper.Set("ai.api_key", key)
	}
	if port := os.Getenv("PORT"); port != "" {
		viper.Set("server.port", port)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetString("server.port"),
			Env:  viper.GetString("server.env"),
		},
		Knowledge: KnowledgeConfig{
			ChunkSize:    viper.GetInt("knowledge.chunk_size"),
			ChunkOverlap: viper.GetInt("knowledge.chunk_overlap"),
		},
		Retrieval: RetrievalConfig{
			TopK:                viper.GetInt("retrieval.top_k"),
			SimilarityThreshold: viper.GetFloat64("retrieval.similarity_threshold"),
			SemanticWeight:      viper.GetFloat64("retrieval.semantic_weight"),
			KeywordWeight:       viper.GetFloat64("retrieval.keyword_weight"),
			CandidateMultiplier: viper.GetInt("retrieval.candidate_multiplier"),
		},
		AI: AIConfig{
			APIKey:         viper.GetString("ai.api_key"),
			BaseURL:        viper.GetString("ai.base_url"),
			EmbeddingModel: viper.GetString("ai.embedding_model"),
			ChatModel:      viper.GetString("ai.chat_model"),
			MaxTokens:      viper.GetInt("ai.max_tokens"),
			Temperature:    viper.GetFloat64("ai.temperature"),
		},
		Upload: UploadConfig{
			MaxSize:      viper.GetInt64("upload.max_size"),
			AllowedTypes: viper.GetStringSlice("upload.allowed_types"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	AppConfig = cfg
	return nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Knowledge.ChunkSize <= 0 {
		return apperrors.NewConfigurationError("knowledge.chunk_size must be positive")
	}
	if c.Knowledge.ChunkOverlap < 0 {
		return apperrors.NewConfigurationError("knowledge.chunk_overlap must not be negative")
	}
	if c.Knowledge.ChunkOverlap >= c.Knowledge.ChunkSize {
		return apperrors.NewConfigurationError("knowledge.chunk_overlap must be smaller than knowledge.chunk_size")
	}
	if c.Retrieval.TopK < 1 {
		return apperrors.NewConfigurationError("retrieval.top_k must be at least 1")
	}
	if c.Retrieval.SimilarityThreshold < 0 || c.Retrieval.SimilarityThreshold > 1 {
		return apperrors.NewConfigurationError("retrieval.similarity_threshold must be in [0,1]")
	}
	if c.Retrieval.CandidateMultiplier < 1 {
		return apperrors.NewConfigurationError("retrieval.candidate_multiplier must be at least 1")
	}
	return nil
}
