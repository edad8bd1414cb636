package controllers

import (
	"github.com/aihub/rag-go/internal/di"
	"github.com/aihub/rag-go/internal/services"
)

// RootController serves the API root.
type RootController struct {
	BaseController
}

func (c *RootController) Index() {
	c.JSONSuccess(map[string]string{"message": "RAG Pipeline API"})
}

// HealthController serves liveness checks.
type HealthController struct {
	BaseController
}

func (c *HealthController) Health() {
	status := map[string]interface{}{"status": "healthy"}

	// Corpus size is cheap to read and useful when debugging ingestion.
	_ = di.Invoke(func(svc *services.RAGService) {
		status["corpus_chunks"] = svc.CorpusSize()
	})

	c.JSONSuccess(status)
}
