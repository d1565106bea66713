package service

import (
	"context"
	"fmt"
	"strings"

	"medextract/internal/apperror"
	"medextract/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// GigaChat rejects a zero temperature, so deterministic requests use this instead.
const gigaChatMinTemperature = 0.01

// GigaChatCompleter is the Completer used when LLM_PROVIDER=gigachat.
type GigaChatCompleter struct {
	client    *gigago.Client
	modelName string
	logger    *zap.Logger
}

func NewGigaChatCompleter(ctx context.Context, cfg config.GigaChatConfig, logger *zap.Logger) (*GigaChatCompleter, error) {
	if cfg.APIKey == "" {
		return nil, apperror.New(apperror.KindConfiguration, "GigaChat API key is not configured")
	}

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "GigaChat"
	}
	logger.Info("Using GigaChat model", zap.String("model", modelName))

	return &GigaChatCompleter{
		client:    client,
		modelName: modelName,
		logger:    logger,
	}, nil
}

func (c *GigaChatCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	// a model per call: SystemInstruction and Temperature are plain fields
	model := c.client.GenerativeModel(c.modelName)
	model.SystemInstruction = systemPrompt
	if temperature < gigaChatMinTemperature {
		temperature = gigaChatMinTemperature
	}
	setFloat(&model.Temperature, temperature)

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: userPrompt},
	}

	resp, err := model.Generate(ctx, messages)
	if err != nil {
		return "", apperror.Wrap(apperror.KindUpstream, err, "failed to generate response")
	}
	if len(resp.Choices) == 0 {
		return "", apperror.New(apperror.KindUpstream, "no response from GigaChat")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.logger.Info("Completion received", zap.String("model", c.modelName), zap.Int("length", len(content)))
	return content, nil
}

func (c *GigaChatCompleter) Close() error {
	if c.client != nil {
		c.client.Close()
	}
	return nil
}

func setFloat[T ~float32 | ~float64](dst *T, v float64) {
	*dst = T(v)
}
