// Package service implements the application's business operations on
// top of the store interfaces: the listing lifecycle and the composed
// list/search/stats queries.
package service

import (
	"context"
	"log/slog"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/store"
)

// Listing query defaults and caps.
const (
	// DefaultPerPage is the page size applied when the client supplies none.
	DefaultPerPage = 20

	// SearchResultCap is the hard ceiling on quick-search results.
	SearchResultCap = 50
)

// CreateListingInput carries the client-supplied fields for a new listing.
type CreateListingInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Location    string
	SellerName  string
	SellerPhone string
	Images      []string
}

// ListingUpdate is an explicit partial update: only non-nil fields are
// applied. This replaces any "if present in payload" dynamic dispatch
// with a typed structure.
type ListingUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	Location    *string
	SellerName  *string
	SellerPhone *string
	Images      *[]string
}

// ListParams are the client-facing filter/sort/page parameters of the
// listing index.
type ListParams struct {
	Category string
	Location string
	Search   string
	Sort     string
	MinPrice *float64
	MaxPrice *float64
	Page     int
	PerPage  int
}

// ListResult is one page of listings plus pagination metadata.
type ListResult struct {
	Listings    []*domain.Listing
	Total       int
	Pages       int
	CurrentPage int
	PerPage     int
	HasNext     bool
	HasPrev     bool
}

// Stats aggregates active-listing counts for the stats endpoint.
type Stats struct {
	TotalListings int
	Categories    map[string]int
	Locations     map[string]int
}

// ListingService enforces the listing lifecycle (create, partial
// update, soft delete) and runs the read queries. It holds no state of
// its own beyond the injected stores.
type ListingService struct {
	listings   store.ListingStore
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewListingService creates a ListingService backed by the given stores.
// If logger is nil, a default logger will be used.
func NewListingService(
	listings store.ListingStore,
	categories store.CategoryStore,
	logger *slog.Logger,
) *ListingService {
	if listings == nil {
		panic("listings store cannot be nil")
	}
	if categories == nil {
		panic("categories store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ListingService{
		listings:   listings,
		categories: categories,
		logger:     logger.With(slog.String("component", "listing_service")),
	}
}

// Create validates the input and persists a new active listing.
// Returns a *domain.ValidationError naming the first missing or
// invalid field; on success the returned listing carries its assigned
// ID and timestamps.
func (s *ListingService) Create(ctx context.Context, input CreateListingInput) (*domain.Listing, error) {
	listing, err := domain.NewListing(
		input.Title,
		input.Description,
		input.Price,
		input.Category,
		input.Location,
		input.SellerName,
		input.SellerPhone,
		input.Images,
	)
	if err != nil {
		return nil, err
	}

	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}

	s.logger.Info("listing created",
		slog.Int64("listing_id", listing.ID),
		slog.String("category", listing.Category))
	return listing, nil
}

// Update applies the non-nil fields of the partial update and always
// refreshes UpdatedAt. The lookup does not require the listing to be
// active: soft-deleted listings remain updatable, matching the public
// API's historical behavior. Returns store.ErrListingNotFound if the
// row does not exist, or a *domain.ValidationError for an invalid price.
func (s *ListingService) Update(ctx context.Context, id int64, update ListingUpdate) (*domain.Listing, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Price != nil && *update.Price < 0 {
		return nil, domain.ErrNegativePrice
	}

	if update.Title != nil {
		listing.Title = *update.Title
	}
	if update.Description != nil {
		listing.Description = *update.Description
	}
	if update.Price != nil {
		listing.Price = *update.Price
	}
	if update.Category != nil {
		listing.Category = *update.Category
	}
	if update.Location != nil {
		listing.Location = *update.Location
	}
	if update.SellerName != nil {
		listing.SellerName = *update.SellerName
	}
	if update.SellerPhone != nil {
		listing.SellerPhone = *update.SellerPhone
	}
	if update.Images != nil {
		listing.Images = *update.Images
		if listing.Images == nil {
			listing.Images = []string{}
		}
	}

	listing.Touch()

	if err := s.listings.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// SoftDelete marks the listing inactive and refreshes UpdatedAt. The
// row is never physically removed. Deleting an already inactive
// listing succeeds and restamps UpdatedAt. Returns
// store.ErrListingNotFound if the row does not exist.
func (s *ListingService) SoftDelete(ctx context.Context, id int64) error {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return err
	}

	listing.Deactivate()

	if err := s.listings.Update(ctx, listing); err != nil {
		return err
	}

	s.logger.Info("listing soft-deleted", slog.Int64("listing_id", id))
	return nil
}

// GetActive retrieves one active listing. Soft-deleted listings are
// indistinguishable from missing ones: both return
// store.ErrListingNotFound.
func (s *ListingService) GetActive(ctx context.Context, id int64) (*domain.Listing, error) {
	return s.listings.GetActiveByID(ctx, id)
}

// List runs the filter/sort/page query and derives the pagination
// metadata. Page defaults to 1 and PerPage to DefaultPerPage; an
// out-of-range page comes back as an empty page, not an error.
func (s *ListingService) List(ctx context.Context, params ListParams) (*ListResult, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	perPage := params.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	listings, total, err := s.listings.List(ctx, store.ListingFilter{
		Category: params.Category,
		Location: params.Location,
		Search:   params.Search,
		MinPrice: params.MinPrice,
		MaxPrice: params.MaxPrice,
		Sort:     params.Sort,
		Limit:    perPage,
		Offset:   (page - 1) * perPage,
	})
	if err != nil {
		return nil, err
	}

	pages := (total + perPage - 1) / perPage

	return &ListResult{
		Listings:    listings,
		Total:       total,
		Pages:       pages,
		CurrentPage: page,
		PerPage:     perPage,
		HasNext:     page < pages,
		HasPrev:     page > 1,
	}, nil
}

// Search is the capped quick search: newest-first, at most
// SearchResultCap rows, no pagination metadata. An empty query is a
// short-circuit to an empty result, not an "all listings" query.
func (s *ListingService) Search(ctx context.Context, q, category, location string) ([]*domain.Listing, error) {
	if q == "" {
		return []*domain.Listing{}, nil
	}

	listings, _, err := s.listings.List(ctx, store.ListingFilter{
		Category: category,
		Location: location,
		Search:   q,
		Sort:     store.SortNewest,
		Limit:    SearchResultCap,
	})
	if err != nil {
		return nil, err
	}

	return listings, nil
}

// Stats returns the total active count plus per-category and
// per-location breakdowns.
func (s *ListingService) Stats(ctx context.Context) (*Stats, error) {
	total, err := s.listings.CountActive(ctx, "")
	if err != nil {
		return nil, err
	}

	categories, err := s.listings.CountActiveGrouped(ctx, "category")
	if err != nil {
		return nil, err
	}

	locations, err := s.listings.CountActiveGrouped(ctx, "location")
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalListings: total,
		Categories:    categories,
		Locations:     locations,
	}, nil
}

// Categories returns the seeded category reference data.
func (s *ListingService) Categories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.GetAll(ctx)
}

// CategoryCount returns the number of active listings whose category
// exactly equals the given name. Unknown category names simply count
// zero rows; the category table is advisory, not foreign-key enforced,
// and no name (not even "all") is treated as a wildcard.
func (s *ListingService) CategoryCount(ctx context.Context, category string) (int, error) {
	return s.listings.CountActive(ctx, category)
}
