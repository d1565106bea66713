package service

import (
	"context"
	"time"

	"medextract/internal/models"
	"medextract/internal/validator"

	"go.uber.org/zap"
)

// TextExtractor turns a validated upload into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, file *models.UploadedFile) (string, error)
}

// FieldExtractor turns document text into a FieldRecord.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string) (models.FieldRecord, error)
}

// DocumentService runs one upload through validation, text extraction and
// field extraction, strictly in that order.
type DocumentService struct {
	policy validator.Policy
	text   TextExtractor
	fields FieldExtractor
	logger *zap.Logger
}

func NewDocumentService(policy validator.Policy, text TextExtractor, fields FieldExtractor, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		policy: policy,
		text:   text,
		fields: fields,
		logger: logger,
	}
}

// ProcessDocument returns the extracted fields, or the first error any stage
// produced. Nothing is retried.
func (s *DocumentService) ProcessDocument(ctx context.Context, file *models.UploadedFile, logger *zap.Logger) (models.FieldRecord, error) {
	if logger == nil {
		logger = s.logger
	}
	logger = logger.With(zap.String("file", file.Filename), zap.String("content_type", file.ContentType))
	start := time.Now()

	logger.Debug("Validating upload")
	if err := s.policy.Build().Validate(file); err != nil {
		logger.Info("Upload rejected", zap.Error(err))
		return models.FieldRecord{}, err
	}

	logger.Debug("Extracting text")
	text, err := s.text.ExtractText(ctx, file)
	if err != nil {
		logger.Error("Text extraction failed", zap.Error(err))
		return models.FieldRecord{}, err
	}

	logger.Debug("Querying model", zap.Int("text_length", len(text)))
	record, err := s.fields.ExtractFields(ctx, text)
	if err != nil {
		logger.Error("Field extraction failed", zap.Error(err))
		return models.FieldRecord{}, err
	}

	logger.Info("Document processed", zap.Duration("elapsed", time.Since(start)))
	return record, nil
}
