// Package apperror defines the error kinds the service distinguishes and the
// HTTP status each one maps to.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindInvalidFile
	KindFileTooLarge
	KindUnprocessable
	KindUpstream
	KindConfiguration
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindInvalidFile:
		return "invalid_file"
	case KindFileTooLarge:
		return "file_too_large"
	case KindUnprocessable:
		return "unprocessable"
	case KindUpstream:
		return "upstream"
	case KindConfiguration:
		return "configuration"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// StatusCode returns the HTTP status for the kind.
func (k Kind) StatusCode() int {
	switch k {
	case KindInvalidFile:
		return http.StatusBadRequest
	case KindFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	case KindUpstream:
		return http.StatusBadGateway
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the kind of the outermost *Error in err's chain,
// or KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsValidation(err error) bool {
	k := KindOf(err)
	return k == KindInvalidFile || k == KindFileTooLarge
}
