package bootstrap

import (
	"log"

	"github.com/aihub/rag-go/internal/config"
	"github.com/aihub/rag-go/internal/di"
	"github.com/aihub/rag-go/internal/knowledge"
	"github.com/aihub/rag-go/internal/logger"
	"github.com/aihub/rag-go/internal/services"
	"github.com/joho/godotenv"
)

// App encapsulates lifecycle resources that need to be cleaned up on
// shutdown.
type App struct {
	cleanupTasks []func() error
}

// Init bootstraps configuration, the logger and the DI container, and
// validates that the full pipeline graph can be constructed.
func Init() (*App, error) {
	// Load environment variables from .env if present (non-fatal if missing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if err := logger.InitLogger(); err != nil {
		return nil, err
	}

	if err := config.LoadConfig(); err != nil {
		return nil, err
	}

	container := di.InitContainer()
	if err := di.RegisterProviders(container); err != nil {
		return nil, err
	}

	// Resolve the service once so misconfiguration surfaces at startup, not
	// on the first request.
	if err := di.Invoke(func(svc *services.RAGService, embedder knowledge.Embedder, chat knowledge.ChatProvider) {
		if !embedder.Ready() || !chat.Ready() {
			logger.Warn("AI provider API key not configured; ingestion and queries will fail until RAG_AI_API_KEY or MISTRAL_API_KEY is set")
		}
	}); err != nil {
		return nil, err
	}

	app := &App{}
	app.cleanupTasks = append(app.cleanupTasks, func() error {
		logger.Sync()
		return nil
	})
	return app, nil
}

// Shutdown closes resources gracefully, in reverse order.
func (a *App) Shutdown() {
	for i := len(a.cleanupTasks) - 1; i >= 0; i-- {
		if err := a.cleanupTasks[i](); err != nil {
			log.Printf("Cleanup error: %v\n", err)
		}
	}
}
