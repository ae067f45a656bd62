package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is usually wrapped by a ValidationError naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is missing, malformed or not positive.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyName is returned when a required display name is blank.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNegativePrice is returned when a product price is below zero.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrNegativeStock is returned when a product stock quantity is below zero.
	ErrNegativeStock = errors.New("stock cannot be negative")
)

// ValidationError describes a single field that failed validation.
// It wraps one of the sentinel errors above and always matches ErrValidation
// through errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports ErrValidation as a match for every ValidationError so callers
// can classify without knowing the specific cause.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
