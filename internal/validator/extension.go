package validator

import (
	"strings"

	"medextract/internal/apperror"
	"medextract/internal/models"
)

// Extension accepts files whose name ends with one of the allowed extensions,
// ignoring case. Extensions may be given with or without the leading dot.
type Extension struct {
	allowed []string
}

// NewExtension builds an Extension check for the given extensions.
func NewExtension(allowed ...string) *Extension {
	lowered := make([]string, 0, len(allowed))
	for _, ext := range allowed {
		lowered = append(lowered, strings.ToLower(ext))
	}
	return &Extension{allowed: lowered}
}

func (v *Extension) Validate(file *models.UploadedFile) error {
	name := strings.ToLower(file.Filename)
	for _, ext := range v.allowed {
		if strings.HasSuffix(name, ext) {
			return nil
		}
	}
	return apperror.New(apperror.KindInvalidFile, "Extension '%s' is not allowed", file.Filename)
}
