package service

import (
	"context"
	"encoding/json"
	"testing"

	"medextract/internal/models"

	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

type stubCompleter struct {
	reply string
	err   error

	calls        int
	systemPrompt string
	userPrompt   string
	temperature  float64
}

func (c *stubCompleter) Complete(_ context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	c.calls++
	c.systemPrompt = systemPrompt
	c.userPrompt = userPrompt
	c.temperature = temperature
	return c.reply, c.err
}

type stubTextExtractor struct {
	text  string
	err   error
	calls int
}

func (e *stubTextExtractor) ExtractText(context.Context, *models.UploadedFile) (string, error) {
	e.calls++
	return e.text, e.err
}

type stubFieldExtractor struct {
	record models.FieldRecord
	err    error
	calls  int
	text   string
}

func (e *stubFieldExtractor) ExtractFields(_ context.Context, text string) (models.FieldRecord, error) {
	e.calls++
	e.text = text
	return e.record, e.err
}
