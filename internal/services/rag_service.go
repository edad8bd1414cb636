package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aihub/rag-go/internal/config"
	apperrors "github.com/aihub/rag-go/internal/errors"
	"github.com/aihub/rag-go/internal/knowledge"
	"go.uber.org/zap"
)

// GreetingAnswer is returned when the intent gate decides a query does not
// need retrieval.
const GreetingAnswer = "Hello! Please ask a question about the uploaded documents."

const answerPromptTemplate = `Based on the following document excerpts, answer the user's question.

Context:
%s

Question: %s

Instructions:
- Provide a clear, concise answer based ONLY on the context provided
- Cite which chunk(s) support your answer (e.g., "According to Chunk 1...")
- If the context doesn't contain enough information, say so
- Do not make up information not present in the context

Answer:`

// RAGService orchestrates ingestion and the single-pass query flow:
// intent check, hybrid retrieval, answer gate, generation.
type RAGService struct {
	cfg      *config.Config
	store    *knowledge.CorpusStore
	chunker  *knowledge.Chunker
	parsers  *knowledge.ParserRegistry
	embedder knowledge.Embedder
	chat     knowledge.ChatProvider
	engine   *knowledge.HybridSearchEngine
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewRAGService wires the pipeline from its components.
func NewRAGService(
	cfg *config.Config,
	store *knowledge.CorpusStore,
	chunker *knowledge.Chunker,
	parsers *knowledge.ParserRegistry,
	embedder knowledge.Embedder,
	chat knowledge.ChatProvider,
	engine *knowledge.HybridSearchEngine,
	metrics *MetricsService,
	logger *zap.Logger,
) *RAGService {
	return &RAGService{
		cfg:      cfg,
		store:    store,
		chunker:  chunker,
		parsers:  parsers,
		embedder: embedder,
		chat:     chat,
		engine:   engine,
		metrics:  metrics,
		logger:   logger,
	}
}

// IngestResult reports one document's ingestion.
type IngestResult struct {
	Filename string `json:"filename"`
	Chunks   int    `json:"chunks"`
}

// IngestDocument extracts text from one uploaded file, chunks it, embeds the
// chunks and appends them to the corpus. The corpus is only mutated after
// every step has succeeded: a failed extraction or embedding leaves the store
// untouched.
func (s *RAGService) IngestDocument(ctx context.Context, reader io.Reader, filename string) (*IngestResult, error) {
	parser := s.parsers.ParserFor(filename)
	if parser == nil {
		return nil, apperrors.NewInvalidFileFormatError(filename)
	}

	text, err := parser.Parse(reader, filename)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Extracted document text",
		zap.String("filename", filename),
		zap.Int("characters", len(text)))

	chunks := s.chunker.Split(text)
	if len(chunks) == 0 {
		return nil, apperrors.NewExtractionError(filename, nil).
			WithDetails("document contains no extractable text")
	}
	s.logger.Info("Chunked document",
		zap.String("filename", filename),
		zap.Int("chunks", len(chunks)))

	embeddings, err := s.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return nil, err
	}

	if err := s.store.Append(chunks, embeddings); err != nil {
		return nil, err
	}

	s.metrics.ObserveIngest(len(chunks))
	s.logger.Info("Ingested document",
		zap.String("filename", filename),
		zap.Int("chunks", len(chunks)),
		zap.Int("corpus_size", s.store.Size()))

	return &IngestResult{Filename: filename, Chunks: len(chunks)}, nil
}

// QueryResponse is the per-query output shape.
type QueryResponse struct {
	Answer      string                      `json:"answer"`
	Chunks      []knowledge.ScoredCandidate `json:"chunks"`
	Grounded    bool                        `json:"grounded"`
	NeedsSearch bool                        `json:"needs_search"`
	Reasoning   string                      `json:"reasoning,omitempty"`
}

// Query runs the single-pass query state machine. Each query terminates in
// exactly one of three outcomes: retrieval skipped, insufficient evidence, or
// a grounded generated answer. Provider failures propagate unchanged.
func (s *RAGService) Query(ctx context.Context, query string) (*QueryResponse, error) {
	s.logger.Info("Received query", zap.String("query", query))

	if !knowledge.NeedsRetrieval(query) {
		s.metrics.ObserveQuery(QueryOutcomeSkipped)
		return &QueryResponse{
			Answer:      GreetingAnswer,
			Chunks:      []knowledge.ScoredCandidate{},
			Grounded:    false,
			NeedsSearch: false,
		}, nil
	}

	processed := knowledge.TransformQuery(query)

	started := time.Now()
	candidates, err := s.engine.Search(ctx, processed, s.cfg.Retrieval.TopK)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveRetrieval(time.Since(started))

	for i, candidate := range candidates {
		if i >= 3 {
			break
		}
		s.logger.Debug("Retrieved chunk",
			zap.Int("rank", i+1),
			zap.Int("position", candidate.Position),
			zap.Float64("score", candidate.Score))
	}

	gate := knowledge.EvaluateGate(candidates, s.cfg.Retrieval.SimilarityThreshold)
	if !gate.Grounded {
		s.logger.Warn("Answer gate failed", zap.String("reasoning", gate.Reasoning))
		s.metrics.ObserveQuery(QueryOutcomeInsufficient)
		return &QueryResponse{
			Answer:      knowledge.InsufficientEvidenceAnswer,
			Chunks:      gate.Top,
			Grounded:    false,
			NeedsSearch: true,
			Reasoning:   gate.Reasoning,
		}, nil
	}

	prompt := fmt.Sprintf(answerPromptTemplate, gate.Context, query)
	answer, err := s.chat.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveQuery(QueryOutcomeGrounded)
	return &QueryResponse{
		Answer:      answer,
		Chunks:      gate.Top,
		Grounded:    true,
		NeedsSearch: true,
	}, nil
}

// CorpusSize reports how many chunks are currently indexed.
func (s *RAGService) CorpusSize() int {
	return s.store.Size()
}
