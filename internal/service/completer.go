package service

import (
	"context"
	"fmt"

	"medextract/pkg/config"

	"go.uber.org/zap"
)

// NewCompleter builds the completion backend selected by cfg.LLM.Provider.
// The returned close function is never nil.
func NewCompleter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Completer, func(), error) {
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI, "":
		if cfg.OpenAI.APIKey == "" {
			logger.Warn("OPENAI_API_KEY is not set; extraction requests will fail")
		}
		return NewOpenAICompleter(cfg.OpenAI, cfg.LLM.Timeout, logger), func() {}, nil
	case config.ProviderGigaChat:
		completer, err := NewGigaChatCompleter(ctx, cfg.GigaChat, logger)
		if err != nil {
			return nil, func() {}, err
		}
		return completer, func() { _ = completer.Close() }, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
	}
}
