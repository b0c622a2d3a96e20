// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. Use cases return these errors (usually wrapped)
// and handlers map them to HTTP status codes.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input data fails field validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBadRequest indicates the request is well-formed but rejected by a
	// request-level rule, such as an age gate or an inverted date range.
	ErrBadRequest = errors.New("bad request")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is like Wrap but formats the message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// FieldViolation is one rejected input field.
type FieldViolation struct {
	Field   string
	Message string
}

// FieldViolator is implemented by errors that report per-field violations.
// Handlers use it to render violation lists without depending on domain types.
type FieldViolator interface {
	error
	FieldViolations() []FieldViolation
}
