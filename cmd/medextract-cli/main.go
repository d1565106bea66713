package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"medextract/internal/models"
	"medextract/internal/prompt"
	"medextract/internal/service"
	"medextract/internal/validator"
	"medextract/pkg/config"
	"medextract/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	path := flag.String("file", "", "path to a lab result PDF")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: medextract-cli -file report.pdf")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()

	completer, closeCompleter, err := service.NewCompleter(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize completion backend", zap.Error(err))
	}
	defer closeCompleter()

	docService := service.NewDocumentService(
		validator.Policy{
			AllowedExtensions: cfg.Upload.AllowedExtensions,
			AllowedMimeTypes:  cfg.Upload.AllowedMimeTypes,
			MaxSizeMB:         cfg.Upload.MaxSizeMB,
		},
		service.NewTextService(appLogger),
		service.NewExtractionService(completer, prompt.NewDefaultStore(cfg.Prompt.Dir), appLogger),
		appLogger,
	)

	file, err := os.Open(*path)
	if err != nil {
		appLogger.Fatal("Failed to open file", zap.String("path", *path), zap.Error(err))
	}
	defer file.Close()

	upload := &models.UploadedFile{
		Filename:    filepath.Base(*path),
		ContentType: mime.TypeByExtension(filepath.Ext(*path)),
		Content:     file,
	}

	record, err := docService.ProcessDocument(ctx, upload, logger.ForRequest(appLogger, uuid.NewString()))
	if err != nil {
		appLogger.Error("Extraction failed", zap.String("path", *path), zap.Error(err))
		os.Exit(1)
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		appLogger.Fatal("Failed to encode result", zap.Error(err))
	}
	fmt.Println(string(out))
}
