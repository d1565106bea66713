package service

import (
	"context"
	"testing"

	"medextract/internal/apperror"
	"medextract/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewCompleter_OpenAI(t *testing.T) {
	cfg := &config.Config{
		LLM:    config.LLMConfig{Provider: config.ProviderOpenAI},
		OpenAI: config.OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini"},
	}

	completer, closeFn, err := NewCompleter(context.Background(), cfg, zap.NewNop())

	require.NoError(t, err)
	require.NotNil(t, closeFn)
	closeFn()
	assert.IsType(t, &OpenAICompleter{}, completer)
}

func TestNewCompleter_GigaChatNeedsKey(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{Provider: config.ProviderGigaChat}}

	_, closeFn, err := NewCompleter(context.Background(), cfg, zap.NewNop())

	assert.Equal(t, apperror.KindConfiguration, apperror.KindOf(err))
	assert.NotNil(t, closeFn)
}

func TestNewCompleter_UnknownProvider(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{Provider: "llama"}}

	_, _, err := NewCompleter(context.Background(), cfg, zap.NewNop())

	assert.ErrorContains(t, err, "llama")
}
