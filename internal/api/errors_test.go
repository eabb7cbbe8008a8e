package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("title", "is required"), http.StatusBadRequest},
		{"listing not found", store.ErrListingNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", store.ErrListingNotFound), http.StatusNotFound},
		{"category not found", store.ErrCategoryNotFound, http.StatusNotFound},
		{"duplicate", store.ErrDuplicate, http.StatusBadRequest},
		{"negative price", domain.ErrNegativePrice, http.StatusBadRequest},
		{
			"store error wrapping not found",
			store.NewStoreError("listing", "get", store.ErrListingNotFound),
			http.StatusNotFound,
		},
		{
			"store error wrapping db failure",
			store.NewStoreError("listing", "list", errors.New("connection refused")),
			http.StatusInternalServerError,
		},
		{"store failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	// Validation errors surface the field name.
	msg := GetSafeErrorMessage(domain.NewValidationError("seller_phone", "is required"))
	assert.Contains(t, msg, "seller_phone")

	assert.Equal(t, "Listing not found", GetSafeErrorMessage(store.ErrListingNotFound))

	assert.Equal(t, "Price must not be negative", GetSafeErrorMessage(domain.ErrNegativePrice))

	// Internal details never leak to clients.
	msg = GetSafeErrorMessage(errors.New(`pq: relation "listings" does not exist`))
	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "listings")
}
