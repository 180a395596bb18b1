package core

import "github.com/pkg/errors"

// FieldError reports a problem with a single form or payload field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is returned by domain services and request bindings when
// input fails validation; the API layer renders Fields as a 400 response body.
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

type shutdown struct {
	message string
}

// NewShutdownError signals an unrecoverable integrity problem; the API error
// handler answers 500 and asks the server to stop.
func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
