package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aihub/rag-go/internal/config"
	"github.com/aihub/rag-go/internal/di"
	"github.com/aihub/rag-go/internal/logger"
	"github.com/aihub/rag-go/internal/services"
	"go.uber.org/zap"
)

// DocumentController handles document uploads and ingestion.
type DocumentController struct {
	BaseController
	ragService *services.RAGService
}

// Prepare resolves the RAG service from the DI container.
func (c *DocumentController) Prepare() {
	if c.ragService == nil {
		if err := di.Invoke(func(svc *services.RAGService) {
			c.ragService = svc
		}); err != nil {
			logger.Error("Failed to resolve RAG service", zap.Error(err))
		}
	}
}

// Upload ingests one or more uploaded files. Each file is processed as a
// unit: extraction, chunking, embedding and the corpus append either all
// succeed or the file is rejected without mutating the corpus.
// POST /api/documents/upload
func (c *DocumentController) Upload() {
	if c.ragService == nil {
		c.JSONError(http.StatusInternalServerError, "service not available")
		return
	}

	files, err := c.GetFiles("files")
	if err != nil || len(files) == 0 {
		c.JSONError(http.StatusBadRequest, "no files uploaded; use multipart field 'files'")
		return
	}

	cfg := config.GetAppConfig()
	results := make([]*services.IngestResult, 0, len(files))
	totalChunks := 0

	for _, header := range files {
		if cfg != nil && cfg.Upload.MaxSize > 0 && header.Size > cfg.Upload.MaxSize {
			c.JSONError(http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file %s exceeds maximum size", header.Filename))
			return
		}
		if cfg != nil && !extensionAllowed(header.Filename, cfg.Upload.AllowedTypes) {
			c.JSONError(http.StatusBadRequest,
				fmt.Sprintf("file %s is not an accepted type", header.Filename))
			return
		}

		file, err := header.Open()
		if err != nil {
			c.JSONError(http.StatusBadRequest,
				fmt.Sprintf("failed to read file %s", header.Filename))
			return
		}

		result, err := c.ragService.IngestDocument(c.Ctx.Request.Context(), file, header.Filename)
		file.Close()
		if err != nil {
			logger.Error("Ingestion failed",
				zap.String("filename", header.Filename),
				zap.Error(err))
			c.handleServiceError(err)
			return
		}

		results = append(results, result)
		totalChunks += result.Chunks
	}

	c.JSONSuccess(map[string]interface{}{
		"message":      fmt.Sprintf("Successfully ingested %d file(s)", len(results)),
		"total_chunks": totalChunks,
		"results":      results,
	})
}

func extensionAllowed(filename string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, candidate := range allowed {
		if ext == strings.ToLower(candidate) {
			return true
		}
	}
	return false
}
