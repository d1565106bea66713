package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"medextract/internal/api"
	"medextract/internal/api/handlers"
	"medextract/internal/prompt"
	"medextract/internal/service"
	"medextract/internal/validator"
	"medextract/pkg/config"
	"medextract/pkg/logger"
	"medextract/pkg/ratelimit"

	"go.uber.org/zap"
)

// @title Lab Results Extraction API
// @version 1.0
// @description Extracts patient and ordering physician fields from uploaded lab result PDFs.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

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
	appLogger.Info("Starting lab results extraction service",
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.Strings("allowed_extensions", cfg.Upload.AllowedExtensions),
		zap.Float64("max_size_mb", cfg.Upload.MaxSizeMB),
	)

	ctx := context.Background()

	completer, closeCompleter, err := service.NewCompleter(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize completion backend", zap.Error(err))
	}
	defer closeCompleter()

	// Initialize services
	prompts := prompt.NewDefaultStore(cfg.Prompt.Dir)
	extractionService := service.NewExtractionService(completer, prompts, appLogger)
	textService := service.NewTextService(appLogger)
	policy := validator.Policy{
		AllowedExtensions: cfg.Upload.AllowedExtensions,
		AllowedMimeTypes:  cfg.Upload.AllowedMimeTypes,
		MaxSizeMB:         cfg.Upload.MaxSizeMB,
	}
	docService := service.NewDocumentService(policy, textService, extractionService, appLogger)

	// One gate for the whole process
	gate := ratelimit.NewGate(cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.MaxWait)

	extractHandler := handlers.NewExtractHandler(docService, appLogger)
	app := api.SetupRouter(extractHandler, gate, &cfg.Server, appLogger)

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
