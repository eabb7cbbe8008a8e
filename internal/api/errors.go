package api

import (
	"errors"
	"net/http"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. Validation failures are client input
// errors (400), anything "not found" is 404, and everything else is a
// server fault (500).
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking internal details such
// as SQL fragments to clients.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrNegativePrice):
		return "Price must not be negative"

	// Validation errors carry the offending field name, which is
	// client-supplied and safe to echo.
	case errors.Is(err, domain.ErrValidation):
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return verr.Error()
		}
		return "Validation error"

	case errors.Is(err, store.ErrListingNotFound):
		return "Listing not found"

	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found"

	case errors.Is(err, store.ErrFileNotFound):
		return "File not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	default:
		return "An unexpected error occurred"
	}
}
