package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aihub/rag-go/internal/di"
	"github.com/aihub/rag-go/internal/logger"
	"github.com/aihub/rag-go/internal/services"
	"go.uber.org/zap"
)

// QueryController handles knowledge-base queries.
type QueryController struct {
	BaseController
	ragService *services.RAGService
}

// QueryRequest is the /api/query request body.
type QueryRequest struct {
	Query string `json:"query"`
}

// Prepare resolves the RAG service from the DI container.
func (c *QueryController) Prepare() {
	if c.ragService == nil {
		if err := di.Invoke(func(svc *services.RAGService) {
			c.ragService = svc
		}); err != nil {
			logger.Error("Failed to resolve RAG service", zap.Error(err))
		}
	}
}

// Query answers a question against the ingested corpus. A gate failure is a
// successful response carrying the insufficient-evidence answer, not an
// error status.
// POST /api/query
func (c *QueryController) Query() {
	if c.ragService == nil {
		c.JSONError(http.StatusInternalServerError, "service not available")
		return
	}

	var req QueryRequest
	if err := json.Unmarshal(c.Ctx.Input.RequestBody, &req); err != nil {
		c.JSONError(http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSONError(http.StatusBadRequest, "query must not be empty")
		return
	}

	response, err := c.ragService.Query(c.Ctx.Request.Context(), req.Query)
	if err != nil {
		logger.Error("Query failed", zap.String("query", req.Query), zap.Error(err))
		c.handleServiceError(err)
		return
	}

	c.JSONSuccess(response)
}
