package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"medextract/internal/apperror"
	"medextract/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Completer sends one system instruction and one user message to a chat
// completion backend and returns the text of the first reply.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error)
}

// OpenAICompleter talks to an OpenAI compatible /chat/completions endpoint.
type OpenAICompleter struct {
	config     config.OpenAIConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewOpenAICompleter(cfg config.OpenAIConfig, timeout time.Duration, logger *zap.Logger) *OpenAICompleter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAICompleter{
		config:     cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	if c.config.APIKey == "" {
		return "", apperror.New(apperror.KindConfiguration, "OpenAI API key is not configured")
	}

	callID := uuid.NewString()
	start := time.Now()

	requestBody := map[string]interface{}{
		"model":           c.config.Model,
		"temperature":     temperature,
		"response_format": map[string]string{"type": "json_object"},
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", apperror.Wrap(apperror.KindInternal, err, "failed to marshal completion request")
	}

	endpoint := strings.TrimRight(c.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", apperror.Wrap(apperror.KindConfiguration, err, "failed to create completion request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	c.logger.Debug("Sending completion request",
		zap.String("call_id", callID),
		zap.String("model", c.config.Model),
		zap.Int("prompt_length", len(userPrompt)),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperror.Wrap(apperror.KindUpstream, err, "completion request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.logger.Warn("Completion backend returned an error",
			zap.String("call_id", callID),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)),
		)
		return "", apperror.New(apperror.KindUpstream,
			"completion backend returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", apperror.Wrap(apperror.KindUpstream, err, "failed to decode completion response")
	}
	if len(completion.Choices) == 0 {
		return "", apperror.New(apperror.KindUpstream, "no choices in completion response")
	}

	c.logger.Info("Completion received",
		zap.String("call_id", callID),
		zap.String("model", c.config.Model),
		zap.Duration("elapsed", time.Since(start)),
	)

	return completion.Choices[0].Message.Content, nil
}
