// Package mocks provides hand-written store mocks for testing.
package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/store"
)

// MockListingStore implements store.ListingStore for testing.
// Each method first consults its function field; when unset, a default
// in-memory implementation over Listings applies, so most tests only
// override the paths they care about.
type MockListingStore struct {
	mu sync.Mutex

	CreateFn             func(ctx context.Context, listing *domain.Listing) error
	GetByIDFn            func(ctx context.Context, id int64) (*domain.Listing, error)
	GetActiveByIDFn      func(ctx context.Context, id int64) (*domain.Listing, error)
	UpdateFn             func(ctx context.Context, listing *domain.Listing) error
	ListFn               func(ctx context.Context, filter store.ListingFilter) ([]*domain.Listing, int, error)
	CountActiveFn        func(ctx context.Context, category string) (int, error)
	CountAllFn           func(ctx context.Context) (int, error)
	CountActiveGroupedFn func(ctx context.Context, column string) (map[string]int, error)

	// Data for the default implementation
	Listings map[int64]*domain.Listing
	nextID   int64

	// LastFilter records the filter passed to the most recent List call.
	LastFilter store.ListingFilter
}

// NewMockListingStore creates a mock store with initialized defaults.
func NewMockListingStore() *MockListingStore {
	return &MockListingStore{
		Listings: make(map[int64]*domain.Listing),
	}
}

// Ensure MockListingStore implements store.ListingStore
var _ store.ListingStore = (*MockListingStore)(nil)

// Create implements the ListingStore interface.
func (m *MockListingStore) Create(ctx context.Context, listing *domain.Listing) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, listing)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	listing.ID = m.nextID
	copied := *listing
	m.Listings[listing.ID] = &copied
	return nil
}

// GetByID implements the ListingStore interface.
func (m *MockListingStore) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	listing, ok := m.Listings[id]
	if !ok {
		return nil, store.ErrListingNotFound
	}
	copied := *listing
	return &copied, nil
}

// GetActiveByID implements the ListingStore interface.
func (m *MockListingStore) GetActiveByID(ctx context.Context, id int64) (*domain.Listing, error) {
	if m.GetActiveByIDFn != nil {
		return m.GetActiveByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	listing, ok := m.Listings[id]
	if !ok || !listing.IsActive {
		return nil, store.ErrListingNotFound
	}
	copied := *listing
	return &copied, nil
}

// Update implements the ListingStore interface.
func (m *MockListingStore) Update(ctx context.Context, listing *domain.Listing) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, listing)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Listings[listing.ID]; !ok {
		return store.ErrListingNotFound
	}
	copied := *listing
	m.Listings[listing.ID] = &copied
	return nil
}

// List implements the ListingStore interface. The default applies the
// same predicate/sort/page semantics as the real store, over the map.
func (m *MockListingStore) List(ctx context.Context, filter store.ListingFilter) ([]*domain.Listing, int, error) {
	m.mu.Lock()
	m.LastFilter = filter
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]*domain.Listing, 0)
	for _, listing := range m.Listings {
		if matchesFilter(listing, filter) {
			copied := *listing
			matched = append(matched, &copied)
		}
	}

	sortListings(matched, filter.Sort)

	total := len(matched)
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	if matched == nil {
		matched = []*domain.Listing{}
	}

	return matched, total, nil
}

// CountActive implements the ListingStore interface.
func (m *MockListingStore) CountActive(ctx context.Context, category string) (int, error) {
	if m.CountActiveFn != nil {
		return m.CountActiveFn(ctx, category)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, listing := range m.Listings {
		if !listing.IsActive {
			continue
		}
		if category != "" && listing.Category != category {
			continue
		}
		count++
	}
	return count, nil
}

// CountAll implements the ListingStore interface.
func (m *MockListingStore) CountAll(ctx context.Context) (int, error) {
	if m.CountAllFn != nil {
		return m.CountAllFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Listings), nil
}

// CountActiveGrouped implements the ListingStore interface.
func (m *MockListingStore) CountActiveGrouped(ctx context.Context, column string) (map[string]int, error) {
	if m.CountActiveGroupedFn != nil {
		return m.CountActiveGroupedFn(ctx, column)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int)
	for _, listing := range m.Listings {
		if !listing.IsActive {
			continue
		}
		switch column {
		case "category":
			counts[listing.Category]++
		case "location":
			counts[listing.Location]++
		}
	}
	return counts, nil
}

func matchesFilter(listing *domain.Listing, filter store.ListingFilter) bool {
	if !listing.IsActive {
		return false
	}
	if filter.Category != "" && filter.Category != store.FilterAll && listing.Category != filter.Category {
		return false
	}
	if filter.Location != "" && filter.Location != store.FilterAll && listing.Location != filter.Location {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(listing.Title), needle) &&
			!strings.Contains(strings.ToLower(listing.Description), needle) {
			return false
		}
	}
	if filter.MinPrice != nil && listing.Price < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && listing.Price > *filter.MaxPrice {
		return false
	}
	return true
}

func sortListings(listings []*domain.Listing, sortOrder string) {
	switch sortOrder {
	case store.SortNewest:
		sort.SliceStable(listings, func(i, j int) bool {
			if listings[i].CreatedAt.Equal(listings[j].CreatedAt) {
				return listings[i].ID < listings[j].ID
			}
			return listings[i].CreatedAt.After(listings[j].CreatedAt)
		})
	case store.SortOldest:
		sort.SliceStable(listings, func(i, j int) bool {
			if listings[i].CreatedAt.Equal(listings[j].CreatedAt) {
				return listings[i].ID < listings[j].ID
			}
			return listings[i].CreatedAt.Before(listings[j].CreatedAt)
		})
	case store.SortPriceLow:
		sort.SliceStable(listings, func(i, j int) bool {
			if listings[i].Price == listings[j].Price {
				return listings[i].ID < listings[j].ID
			}
			return listings[i].Price < listings[j].Price
		})
	case store.SortPriceHigh:
		sort.SliceStable(listings, func(i, j int) bool {
			if listings[i].Price == listings[j].Price {
				return listings[i].ID < listings[j].ID
			}
			return listings[i].Price > listings[j].Price
		})
	default:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].ID < listings[j].ID
		})
	}
}
