package mocks

import (
	"context"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/store"
)

// MockCategoryStore implements store.CategoryStore for testing.
type MockCategoryStore struct {
	GetAllFn    func(ctx context.Context) ([]*domain.Category, error)
	GetByNameFn func(ctx context.Context, name string) (*domain.Category, error)

	// Categories backs the default implementation, in seed order.
	Categories []*domain.Category
}

// NewMockCategoryStore creates a mock store pre-seeded with the
// default category reference data.
func NewMockCategoryStore() *MockCategoryStore {
	return &MockCategoryStore{
		Categories: []*domain.Category{
			{ID: 1, Name: "cars", DisplayName: "Cars", Icon: "fas fa-car", Description: "Used cars & vehicles"},
			{ID: 2, Name: "mobiles", DisplayName: "Mobiles", Icon: "fas fa-mobile-alt", Description: "Smartphones & tablets"},
			{ID: 3, Name: "electronics", DisplayName: "Electronics", Icon: "fas fa-laptop", Description: "Gadgets & appliances"},
		},
	}
}

// Ensure MockCategoryStore implements store.CategoryStore
var _ store.CategoryStore = (*MockCategoryStore)(nil)

// GetAll implements the CategoryStore interface.
func (m *MockCategoryStore) GetAll(ctx context.Context) ([]*domain.Category, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(ctx)
	}
	return m.Categories, nil
}

// GetByName implements the CategoryStore interface.
func (m *MockCategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}
	for _, category := range m.Categories {
		if category.Name == name {
			return category, nil
		}
	}
	return nil, store.ErrCategoryNotFound
}
