package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"medextract/internal/apperror"
	"medextract/internal/models"
	"medextract/internal/prompt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
)

// systemInstruction pins the reply format and the "not present" convention.
// The client never fills in missing keys itself.
const systemInstruction = "You are an AI assistant specialized in extracting structured data from text. " +
	"Always respond strictly in the JSON format provided by the user, without additional text, explanations, or commentary. " +
	"If a field is not present in the input, return '" + models.NotPresent + "' as the value for that field."

// PromptRenderer fills a named prompt template.
type PromptRenderer interface {
	Render(name string, values map[string]string) (string, error)
}

var fieldSchema = jsonschema.MustCompileString("field_record.schema.json", buildFieldSchema())

// buildFieldSchema requires every field of models.RequiredFields as a string.
func buildFieldSchema() string {
	props := make(map[string]any, len(models.RequiredFields))
	for _, name := range models.RequiredFields {
		props[name] = map[string]any{"type": "string"}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": props,
		"required":   models.RequiredFields,
	}
	b, _ := json.Marshal(schema)
	return string(b)
}

// ExtractionService turns document text into a FieldRecord via the completion backend.
type ExtractionService struct {
	completer Completer
	prompts   PromptRenderer
	logger    *zap.Logger
}

func NewExtractionService(completer Completer, prompts PromptRenderer, logger *zap.Logger) *ExtractionService {
	return &ExtractionService{
		completer: completer,
		prompts:   prompts,
		logger:    logger,
	}
}

// ExtractFields makes a single completion call at temperature 0. The reply
// must be a JSON object holding every required field; anything else fails
// the whole call.
func (s *ExtractionService) ExtractFields(ctx context.Context, text string) (models.FieldRecord, error) {
	userPrompt, err := s.prompts.Render(prompt.ExtractionTemplate, map[string]string{
		prompt.TextSlot: text,
	})
	if err != nil {
		return models.FieldRecord{}, apperror.Wrap(apperror.KindConfiguration, err, "failed to load prompt")
	}

	raw, err := s.completer.Complete(ctx, systemInstruction, userPrompt, 0)
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return models.FieldRecord{}, err
		}
		return models.FieldRecord{}, apperror.Wrap(apperror.KindUpstream, err, "failed to get response from completion backend")
	}

	record, err := parseFieldRecord(raw)
	if err != nil {
		s.logger.Warn("Model reply rejected", zap.Error(err), zap.Int("reply_length", len(raw)))
		return models.FieldRecord{}, err
	}

	s.logger.Info("Fields extracted", zap.Int("text_length", len(text)))
	return record, nil
}

func parseFieldRecord(raw string) (models.FieldRecord, error) {
	body := strings.TrimSpace(raw)

	var parsed any
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return models.FieldRecord{}, apperror.Wrap(apperror.KindUpstream, err, "failed to parse model reply as JSON: %q", raw)
	}

	if err := fieldSchema.Validate(parsed); err != nil {
		return models.FieldRecord{}, apperror.Wrap(apperror.KindUpstream, err, "model reply is missing required fields: %s", body)
	}

	var record models.FieldRecord
	if err := json.Unmarshal([]byte(body), &record); err != nil {
		return models.FieldRecord{}, apperror.Wrap(apperror.KindUpstream, err, "failed to decode model reply")
	}
	return record, nil
}
