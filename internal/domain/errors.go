// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrNegativePrice is returned when a listing price is below zero.
	// It wraps ErrValidation so it maps to a client error at the API
	// boundary like any other validation failure.
	ErrNegativePrice = fmt.Errorf("%w: price must not be negative", ErrValidation)
)

// ValidationError reports the first client-supplied field that failed
// validation. Field holds the JSON name of the field so the message can
// be surfaced to API clients as-is.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

// Unwrap makes ValidationError match errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError for the given JSON field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
