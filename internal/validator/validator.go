// Package validator checks uploaded files against an upload policy.
//
// Each check is a Validator; a Composite runs several in order and stops at
// the first failure. Failures are *apperror.Error values of kind
// KindInvalidFile or KindFileTooLarge.
package validator

import "medextract/internal/models"

// Validator checks one upload and returns nil when it passes.
type Validator interface {
	Validate(file *models.UploadedFile) error
}

// Func adapts a plain function to a Validator.
type Func func(file *models.UploadedFile) error

func (f Func) Validate(file *models.UploadedFile) error { return f(file) }

// Composite runs its children in declaration order and returns the first failure.
type Composite struct {
	validators []Validator
}

// NewComposite chains validators in the order given.
func NewComposite(validators ...Validator) *Composite {
	return &Composite{validators: validators}
}

func (c *Composite) Validate(file *models.UploadedFile) error {
	for _, v := range c.validators {
		if err := v.Validate(file); err != nil {
			return err
		}
	}
	return nil
}

// Policy is the upload policy a request is checked against.
type Policy struct {
	AllowedExtensions []string
	AllowedMimeTypes  []string
	MaxSizeMB         float64
}

// Build returns a fresh chain for the policy. The stream-seeking size check
// runs last, after the header-only checks.
func (p Policy) Build() Validator {
	return NewComposite(
		NewExtension(p.AllowedExtensions...),
		NewMimeType(p.AllowedMimeTypes...),
		NewSize(p.MaxSizeMB),
	)
}
