package domain

import (
	"strings"

	"github.com/allisson/users/internal/errors"
)

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserTooYoung indicates the user's age is below the configured minimum.
	ErrUserTooYoung = errors.Wrap(errors.ErrBadRequest, "user age is lower than the minimum age")

	// ErrInvalidDateRange indicates a search range whose start is after its end.
	ErrInvalidDateRange = errors.Wrap(errors.ErrBadRequest, "bad time range")

	// ErrValidationFailed indicates one or more field rules failed.
	ErrValidationFailed = errors.Wrap(errors.ErrInvalidInput, "user validation failed")
)

// Violation describes one failed validation rule.
type Violation struct {
	Field   string
	Message string
}

// ValidationError carries every violation found for a user.
// It matches ErrValidationFailed and errors.ErrInvalidInput.
type ValidationError struct {
	Violations []Violation
}

// Error joins the violations as "field: message" pairs.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "user validation failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes ErrValidationFailed to errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// FieldViolations implements errors.FieldViolator.
func (e *ValidationError) FieldViolations() []errors.FieldViolation {
	out := make([]errors.FieldViolation, len(e.Violations))
	for i, v := range e.Violations {
		out[i] = errors.FieldViolation{Field: v.Field, Message: v.Message}
	}
	return out
}
