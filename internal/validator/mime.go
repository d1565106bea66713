package validator

import (
	"slices"

	"medextract/internal/apperror"
	"medextract/internal/models"
)

// MimeType checks the client-declared content type only; the bytes are not sniffed.
type MimeType struct {
	allowed []string
}

// NewMimeType builds a MimeType check for the given content types.
func NewMimeType(allowed ...string) *MimeType {
	return &MimeType{allowed: allowed}
}

func (v *MimeType) Validate(file *models.UploadedFile) error {
	if slices.Contains(v.allowed, file.ContentType) {
		return nil
	}
	return apperror.New(apperror.KindInvalidFile, "Content type must be one of %v", v.allowed)
}
