package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"abit-advisor/internal/api"
	"abit-advisor/internal/api/handlers"
	"abit-advisor/internal/models"
	"abit-advisor/internal/repository"
	"abit-advisor/internal/service"
	"abit-advisor/pkg/config"
	"abit-advisor/pkg/logger"
	"abit-advisor/pkg/postgres"

	"go.uber.org/zap"
)

// @title Abit Advisor API
// @version 1.0
// @description RAG-помощник для абитуриентов, выбирающих между магистерскими программами ИТМО по ИИ

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting abit-advisor service")

	ctx := context.Background()

	// Load the knowledge corpus
	entries, err := loadCorpus(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load knowledge corpus", zap.Error(err))
	}
	appLogger.Info("Knowledge corpus loaded",
		zap.String("source", cfg.Corpus.Source),
		zap.Int("entries", len(entries)),
	)

	// Build the retrieval side
	embedder := service.NewEmbeddingService(&cfg.Embedding, appLogger)
	ragService := service.NewRAGService(embedder, &cfg.RAG, appLogger)
	if len(entries) > 0 {
		if err := ragService.BuildIndex(ctx, entries); err != nil {
			appLogger.Fatal("Failed to build vector index", zap.Error(err))
		}
	} else {
		appLogger.Warn("Knowledge corpus is empty, all queries will get the guidance message")
	}

	// Build the generation side: GigaChat primary when configured, local
	// fallback always
	quota := service.NewQuotaTracker(cfg.Quota.MonthlyTokenLimit)

	var strategies []service.Strategy
	if cfg.GigaChat.APIKey != "" {
		llmService, err := service.NewLLMService(&cfg.GigaChat, quota, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize GigaChat service", zap.Error(err))
		}
		defer llmService.Close()
		strategies = append(strategies, llmService)
	} else {
		appLogger.Warn("GIGACHAT_API_KEY is not set, running on the local fallback model only")
	}
	strategies = append(strategies, service.NewLocalLLMService(&cfg.LocalLLM, appLogger))

	genService := service.NewGenerationService(appLogger, strategies...)
	chatService := service.NewChatService(ragService, genService, cfg.RAG.TopK, appLogger)
	recService := service.NewRecommendationService(appLogger)

	// Initialize handlers and router
	chatHandler := handlers.NewChatHandler(chatService, appLogger)
	recHandler := handlers.NewRecommendationHandler(recService, appLogger)
	app := api.SetupRouter(chatHandler, recHandler)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

func loadCorpus(ctx context.Context, cfg *config.Config, appLogger *zap.Logger) ([]*models.KnowledgeEntry, error) {
	switch cfg.Corpus.Source {
	case config.CorpusSourceDatabase:
		db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)
		return knowledgeRepo.ListAll(ctx)
	case config.CorpusSourceFile:
		return repository.LoadCorpusFile(cfg.Corpus.Path)
	default:
		return nil, fmt.Errorf("unknown corpus source %q", cfg.Corpus.Source)
	}
}
