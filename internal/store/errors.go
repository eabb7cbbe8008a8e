// Package store defines the repository interfaces that abstract
// durable storage for listings and categories, plus the shared error
// taxonomy used by all implementations.
package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. This is the generic version of the entity-specific not
	// found errors.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a
	// duplicate of a unique entity (e.g. a category with the same name).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails a database
	// constraint before being stored.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrListingNotFound indicates that the requested listing does not
	// exist. Readers also receive this for soft-deleted listings, which
	// are indistinguishable from nonexistent ones on every read path.
	ErrListingNotFound = fmt.Errorf("%w: listing", ErrNotFound)

	// ErrCategoryNotFound indicates that the requested category does not exist.
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)

	// ErrFileNotFound indicates that the requested uploaded file does not exist.
	ErrFileNotFound = fmt.Errorf("%w: file", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError is a custom error type for store-specific failures with
// additional context. It maps to HTTP 500 at the API boundary.
type StoreError struct {
	Entity    string // The entity type (e.g. "listing", "category")
	Operation string // The operation that failed (e.g. "create", "update")
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s operation on %s failed: %v", e.Operation, e.Entity, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError wrapping err.
func NewStoreError(entity, operation string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Err: err}
}
