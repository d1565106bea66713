package service

import (
	"context"
	"io"
	"strings"

	"medextract/internal/apperror"
	"medextract/internal/models"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

type TextService struct {
	logger *zap.Logger
}

func NewTextService(logger *zap.Logger) *TextService {
	return &TextService{logger: logger}
}

// ExtractText returns the text of every page of a PDF upload, joined by newlines.
// The upload is read from the start regardless of its current position.
func (s *TextService) ExtractText(ctx context.Context, file *models.UploadedFile) (string, error) {
	if _, err := file.Content.Seek(0, io.SeekStart); err != nil {
		return "", apperror.Wrap(apperror.KindInternal, err, "failed to rewind upload")
	}
	data, err := io.ReadAll(file.Content)
	if err != nil {
		return "", apperror.Wrap(apperror.KindInternal, err, "failed to read upload")
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", apperror.Wrap(apperror.KindUnprocessable, err, "failed to open PDF")
	}
	defer doc.Close()

	var textBuilder strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", apperror.Wrap(apperror.KindInternal, err, "text extraction cancelled")
		}

		pageText, err := doc.Text(i)
		if err != nil {
			s.logger.Warn("Failed to extract text from page",
				zap.Int("page", i+1),
				zap.String("file", file.Filename),
				zap.Error(err),
			)
			continue
		}

		if pageText != "" {
			textBuilder.WriteString(pageText)
			textBuilder.WriteString("\n")
		}
	}

	text := strings.TrimSpace(sanitizeUTF8(textBuilder.String()))
	if text == "" {
		return "", apperror.New(apperror.KindUnprocessable, "no text found in %s", file.Filename)
	}

	s.logger.Info("PDF text extracted",
		zap.String("file", file.Filename),
		zap.Int("pages", doc.NumPage()),
		zap.Int("text_length", len(text)),
	)

	return text, nil
}
