package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or request payload fails
	// validation. It is usually wrapped by a ValidationError carrying field detail.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyTaskID is returned when a task has no identifier.
	ErrEmptyTaskID = errors.New("task ID cannot be empty")

	// ErrEmptyTitle is returned when a task title is empty.
	ErrEmptyTitle = errors.New("task title cannot be empty")

	// ErrMissingCreatedAt is returned when a task has a zero creation timestamp.
	ErrMissingCreatedAt = errors.New("task creation time cannot be zero")
)

// FieldError describes a single offending field in a validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects field-level validation failures.
// It unwraps to the cause supplied at construction, which is ErrValidation
// unless a more specific sentinel was given.
type ValidationError struct {
	Fields []FieldError
	Err    error
}

// NewValidationError creates a ValidationError for a single field.
// A nil err defaults to ErrValidation.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{
		Fields: []FieldError{{Field: field, Message: message}},
		Err:    err,
	}
}

// Add appends another offending field.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%v: %s", e.Err, strings.Join(parts, "; "))
}

// Unwrap returns the underlying sentinel so errors.Is works.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports ErrValidation for every ValidationError, so callers can match on
// the generic sentinel even when a more specific cause was wrapped.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
