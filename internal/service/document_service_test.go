package service

import (
	"bytes"
	"context"
	"testing"

	"medextract/internal/apperror"
	"medextract/internal/models"
	"medextract/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pdfPolicy = validator.Policy{
	AllowedExtensions: []string{"pdf"},
	AllowedMimeTypes:  []string{"application/pdf"},
	MaxSizeMB:         10,
}

func upload(name, contentType string, size int) *models.UploadedFile {
	return &models.UploadedFile{
		Filename:    name,
		ContentType: contentType,
		Content:     bytes.NewReader(make([]byte, size)),
	}
}

func TestProcessDocument_Success(t *testing.T) {
	want := models.FieldRecord{PatientName: "Jane Doe"}
	text := &stubTextExtractor{text: "PATIENT: Jane Doe"}
	fields := &stubFieldExtractor{record: want}
	svc := NewDocumentService(pdfPolicy, text, fields, zap.NewNop())

	got, err := svc.ProcessDocument(context.Background(), upload("report.pdf", "application/pdf", 2*1024*1024), nil)

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "PATIENT: Jane Doe", fields.text)
}

func TestProcessDocument_RejectedBeforeExtraction(t *testing.T) {
	tests := []struct {
		name string
		file *models.UploadedFile
		kind apperror.Kind
	}{
		{"extension", upload("photo.png", "image/png", 10), apperror.KindInvalidFile},
		{"mime", upload("report.pdf", "text/plain", 10), apperror.KindInvalidFile},
		{"size", upload("report.pdf", "application/pdf", 11*1024*1024), apperror.KindFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := &stubTextExtractor{text: "x"}
			fields := &stubFieldExtractor{}
			svc := NewDocumentService(pdfPolicy, text, fields, zap.NewNop())

			_, err := svc.ProcessDocument(context.Background(), tt.file, zap.NewNop())

			assert.Equal(t, tt.kind, apperror.KindOf(err))
			assert.Zero(t, text.calls)
			assert.Zero(t, fields.calls)
		})
	}
}

func TestProcessDocument_TextFailureStopsPipeline(t *testing.T) {
	text := &stubTextExtractor{err: apperror.New(apperror.KindUnprocessable, "no text found")}
	fields := &stubFieldExtractor{}
	svc := NewDocumentService(pdfPolicy, text, fields, zap.NewNop())

	_, err := svc.ProcessDocument(context.Background(), upload("report.pdf", "application/pdf", 10), nil)

	assert.Equal(t, apperror.KindUnprocessable, apperror.KindOf(err))
	assert.Zero(t, fields.calls)
}

func TestProcessDocument_FieldFailure(t *testing.T) {
	text := &stubTextExtractor{text: "x"}
	fields := &stubFieldExtractor{err: apperror.New(apperror.KindUpstream, "bad reply")}
	svc := NewDocumentService(pdfPolicy, text, fields, zap.NewNop())

	record, err := svc.ProcessDocument(context.Background(), upload("report.pdf", "application/pdf", 10), nil)

	assert.Equal(t, apperror.KindUpstream, apperror.KindOf(err))
	assert.Equal(t, models.FieldRecord{}, record)
}

func TestSanitizeUTF8(t *testing.T) {
	assert.Equal(t, "Jane Doe", sanitizeUTF8("Jane Doe"))
	assert.Equal(t, "Jane Doe", sanitizeUTF8("Jane\xff Doe"))
	assert.Equal(t, "ab", sanitizeUTF8("a\xc3b"))
}
