package store

import (
	"context"

	"github.com/ecofinds/ecofinds-api/internal/domain"
)

// CategoryStore defines the interface for category reference data.
// Categories are seeded by migration and never written at runtime, so
// the interface is read-only.
type CategoryStore interface {
	// GetAll returns every category in seed order.
	GetAll(ctx context.Context) ([]*domain.Category, error)

	// GetByName retrieves a category by its unique name.
	// Returns ErrCategoryNotFound if it does not exist.
	GetByName(ctx context.Context, name string) (*domain.Category, error)
}
