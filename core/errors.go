package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// corrupt marks a persisted document that failed the minimal shape check.
// The core refuses to operate on such a document.
type corrupt struct {
	message string
}

func NewCorruptDocumentError(msg string) error {
	return &corrupt{message: msg}
}

func (c corrupt) Error() string {
	return c.message
}

func IsCorruptDocument(err error) bool {
	_, ok := errors.Cause(err).(*corrupt)
	return ok
}
