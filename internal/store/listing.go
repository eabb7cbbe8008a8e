package store

import (
	"context"

	"github.com/ecofinds/ecofinds-api/internal/domain"
)

// FilterAll is the sentinel value meaning "no constraint on this
// field" for the category and location filters.
const FilterAll = "all"

// Recognized sort orders for listing queries. An unrecognized value is
// deliberately not an error: the query falls back to the store's
// stable insertion-order tie-break with no explicit sort, matching the
// lenient behavior of the public API.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// ListingFilter describes one read query over active listings. All
// predicates are combined with AND; zero values (and FilterAll for
// Category/Location) disable the corresponding predicate. The implicit
// is_active = true predicate is applied by every implementation and
// cannot be disabled.
type ListingFilter struct {
	// Category constrains listings to one category name; FilterAll or
	// empty means no constraint.
	Category string

	// Location constrains listings to one location tag; FilterAll or
	// empty means no constraint.
	Location string

	// Search is matched case-insensitively as a substring of the title
	// or the description. Empty disables the predicate.
	Search string

	// MinPrice and MaxPrice are inclusive bounds; nil means unbounded.
	MinPrice *float64
	MaxPrice *float64

	// Sort is one of the Sort* constants; anything else applies no
	// explicit order.
	Sort string

	// Limit caps the number of returned rows; 0 means no cap.
	Limit int

	// Offset skips rows from the start of the result; used for paging.
	Offset int
}

// ListingStore defines the interface for listing persistence.
type ListingStore interface {
	// Create inserts the listing and assigns its ID. The caller is
	// responsible for domain validation before the insert.
	Create(ctx context.Context, listing *domain.Listing) error

	// GetByID retrieves a listing by ID regardless of its active flag.
	// Returns ErrListingNotFound if the row does not exist. Writers use
	// this path, which is why soft-deleted listings remain updatable.
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)

	// GetActiveByID retrieves a listing by ID, treating soft-deleted
	// rows exactly like missing ones. Returns ErrListingNotFound for both.
	GetActiveByID(ctx context.Context, id int64) (*domain.Listing, error)

	// Update persists all mutable fields of the listing.
	// Returns ErrListingNotFound if the row does not exist.
	Update(ctx context.Context, listing *domain.Listing) error

	// List returns the page of active listings matching the filter plus
	// the total number of matching rows ignoring Limit/Offset.
	List(ctx context.Context, filter ListingFilter) ([]*domain.Listing, int, error)

	// CountActive returns the number of active listings, optionally
	// constrained to one category. The category matches exactly, with
	// no "all" sentinel: category is free text, so a listing whose
	// category is literally "all" must count under "all". Empty means
	// no constraint.
	CountActive(ctx context.Context, category string) (int, error)

	// CountAll returns the total number of listing rows, soft-deleted
	// ones included.
	CountAll(ctx context.Context) (int, error)

	// CountActiveGrouped returns active listing counts keyed by the
	// given column, which must be either "category" or "location".
	CountActiveGrouped(ctx context.Context, column string) (map[string]int, error)
}
