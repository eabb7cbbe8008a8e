package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(ErrListingNotFound))
	assert.True(t, IsNotFoundError(ErrCategoryNotFound))
	assert.True(t, IsNotFoundError(ErrFileNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("lookup: %w", ErrListingNotFound)))

	assert.False(t, IsNotFoundError(ErrDuplicate))
	assert.False(t, IsNotFoundError(errors.New("connection refused")))
	assert.False(t, IsNotFoundError(nil))
}

func TestStoreErrorUnwrap(t *testing.T) {
	t.Parallel()

	// Wrapping must not hide the sentinel from errors.Is.
	err := NewStoreError("listing", "get", ErrListingNotFound)
	assert.ErrorIs(t, err, ErrListingNotFound)
	assert.True(t, IsNotFoundError(err))

	assert.Contains(t, err.Error(), "listing")
	assert.Contains(t, err.Error(), "get")
}
