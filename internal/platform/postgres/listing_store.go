package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/platform/logger"
	"github.com/ecofinds/ecofinds-api/internal/store"
)

// listingColumns is the canonical column list scanned into a domain.Listing.
const listingColumns = "id, title, description, price, category, location, " +
	"seller_name, seller_phone, images, created_at, updated_at, is_active"

// PostgresListingStore implements the store.ListingStore interface
// using a PostgreSQL database as the storage backend.
type PostgresListingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresListingStore creates a new PostgreSQL implementation of the
// ListingStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresListingStore(db store.DBTX, logger *slog.Logger) *PostgresListingStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresListingStore{
		db:     db,
		logger: logger.With(slog.String("component", "listing_store")),
	}
}

// Ensure PostgresListingStore implements store.ListingStore interface
var _ store.ListingStore = (*PostgresListingStore)(nil)

// Create implements store.ListingStore.Create
// It inserts the listing and assigns its serial ID. A single INSERT
// statement, so a failure leaves the store unmodified.
func (s *PostgresListingStore) Create(ctx context.Context, listing *domain.Listing) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	images, err := json.Marshal(listing.Images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}

	query := `
		INSERT INTO listings (title, description, price, category, location,
			seller_name, seller_phone, images, created_at, updated_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err = s.db.QueryRowContext(
		ctx,
		query,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.Category,
		listing.Location,
		listing.SellerName,
		listing.SellerPhone,
		images,
		listing.CreatedAt,
		listing.UpdatedAt,
		listing.IsActive,
	).Scan(&listing.ID)

	if err != nil {
		log.Error("failed to create listing",
			slog.String("error", err.Error()),
			slog.String("title", listing.Title))
		return store.NewStoreError("listing", "create", MapError(err))
	}

	log.Info("listing created",
		slog.Int64("listing_id", listing.ID),
		slog.String("category", listing.Category))
	return nil
}

// GetByID implements store.ListingStore.GetByID
// It retrieves a listing regardless of its active flag; this is the
// write path's lookup, which is why soft-deleted rows stay updatable.
// Returns store.ErrListingNotFound if the row does not exist.
func (s *PostgresListingStore) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	return s.getByID(ctx, id, false)
}

// GetActiveByID implements store.ListingStore.GetActiveByID
// Soft-deleted rows are indistinguishable from missing ones here:
// both return store.ErrListingNotFound.
func (s *PostgresListingStore) GetActiveByID(ctx context.Context, id int64) (*domain.Listing, error) {
	return s.getByID(ctx, id, true)
}

func (s *PostgresListingStore) getByID(ctx context.Context, id int64, activeOnly bool) (*domain.Listing, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := "SELECT " + listingColumns + " FROM listings WHERE id = $1"
	if activeOnly {
		query += " AND is_active = TRUE"
	}

	listing, err := scanListing(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("listing not found", slog.Int64("listing_id", id))
			return nil, store.ErrListingNotFound
		}
		log.Error("failed to get listing",
			slog.String("error", err.Error()),
			slog.Int64("listing_id", id))
		return nil, store.NewStoreError("listing", "get", MapError(err))
	}

	return listing, nil
}

// Update implements store.ListingStore.Update
// It persists every mutable field in one UPDATE targeting the row by
// id. Returns store.ErrListingNotFound if no row was affected.
func (s *PostgresListingStore) Update(ctx context.Context, listing *domain.Listing) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	images, err := json.Marshal(listing.Images)
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}

	query := `
		UPDATE listings
		SET title = $1, description = $2, price = $3, category = $4,
			location = $5, seller_name = $6, seller_phone = $7, images = $8,
			updated_at = $9, is_active = $10
		WHERE id = $11
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.Category,
		listing.Location,
		listing.SellerName,
		listing.SellerPhone,
		images,
		listing.UpdatedAt,
		listing.IsActive,
		listing.ID,
	)
	if err != nil {
		log.Error("failed to update listing",
			slog.String("error", err.Error()),
			slog.Int64("listing_id", listing.ID))
		return store.NewStoreError("listing", "update", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrListingNotFound)
}

// List implements store.ListingStore.List
// It runs the composed filter twice: once as a COUNT for the total
// ignoring page bounds and once with ORDER BY/LIMIT/OFFSET for the
// page itself.
func (s *PostgresListingStore) List(ctx context.Context, filter store.ListingFilter) ([]*domain.Listing, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildListingWhere(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM listings" + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count listings", slog.String("error", err.Error()))
		return nil, 0, store.NewStoreError("listing", "list", MapError(err))
	}

	query := "SELECT " + listingColumns + " FROM listings" + where + orderClause(filter.Sort)
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list listings", slog.String("error", err.Error()))
		return nil, 0, store.NewStoreError("listing", "list", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	listings := make([]*domain.Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, 0, store.NewStoreError("listing", "list", MapError(err))
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, store.NewStoreError("listing", "list", MapError(err))
	}

	return listings, total, nil
}

// CountActive implements store.ListingStore.CountActive
// The category is matched exactly; there is no "all" sentinel here in
// contrast to the list filter, since category is free text.
func (s *PostgresListingStore) CountActive(ctx context.Context, category string) (int, error) {
	query := "SELECT COUNT(*) FROM listings WHERE is_active = TRUE"
	var args []any
	if category != "" {
		query += " AND category = $1"
		args = append(args, category)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, store.NewStoreError("listing", "count", MapError(err))
	}
	return count, nil
}

// CountAll implements store.ListingStore.CountAll
// Soft-deleted rows are included, which is what the first-boot seed
// gate needs.
func (s *PostgresListingStore) CountAll(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM listings").Scan(&count)
	if err != nil {
		return 0, store.NewStoreError("listing", "count", MapError(err))
	}
	return count, nil
}

// CountActiveGrouped implements store.ListingStore.CountActiveGrouped
// The column name is restricted to a fixed whitelist; anything else is
// rejected rather than interpolated into the statement.
func (s *PostgresListingStore) CountActiveGrouped(ctx context.Context, column string) (map[string]int, error) {
	switch column {
	case "category", "location":
	default:
		return nil, fmt.Errorf("unsupported group column %q", column)
	}

	query := fmt.Sprintf(
		"SELECT %s, COUNT(*) FROM listings WHERE is_active = TRUE GROUP BY %s",
		column, column,
	)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, store.NewStoreError("listing", "count", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, store.NewStoreError("listing", "count", MapError(err))
		}
		counts[key] = count
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("listing", "count", MapError(err))
	}

	return counts, nil
}

// buildListingWhere composes the filter into a WHERE clause with
// positional arguments. Every read path carries the non-overridable
// is_active predicate; the remaining predicates are ANDed in only when
// supplied, with store.FilterAll acting as the no-constraint sentinel
// for category and location.
func buildListingWhere(filter store.ListingFilter) (string, []any) {
	conditions := []string{"is_active = TRUE"}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" && filter.Category != store.FilterAll {
		conditions = append(conditions, "category = "+arg(filter.Category))
	}
	if filter.Location != "" && filter.Location != store.FilterAll {
		conditions = append(conditions, "location = "+arg(filter.Location))
	}
	if filter.Search != "" {
		placeholder := arg("%" + filter.Search + "%")
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE %s OR description ILIKE %s)", placeholder, placeholder))
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, "price >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, "price <= "+arg(*filter.MaxPrice))
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// orderClause maps a sort name to its ORDER BY clause. The id
// tie-break is always ascending: serial ids follow insertion order, so
// rows with equal keys come back in the order they were created even
// under the descending sorts. Unrecognized sort values apply no
// explicit order beyond that tie-break, preserving the API's lenient
// behavior.
func orderClause(sort string) string {
	switch sort {
	case store.SortNewest:
		return " ORDER BY created_at DESC, id ASC"
	case store.SortOldest:
		return " ORDER BY created_at ASC, id ASC"
	case store.SortPriceLow:
		return " ORDER BY price ASC, id ASC"
	case store.SortPriceHigh:
		return " ORDER BY price DESC, id ASC"
	default:
		return " ORDER BY id ASC"
	}
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanListing reads one row in listingColumns order, decoding the
// jsonb images column into the ordered filename slice.
func scanListing(row rowScanner) (*domain.Listing, error) {
	var listing domain.Listing
	var images []byte

	err := row.Scan(
		&listing.ID,
		&listing.Title,
		&listing.Description,
		&listing.Price,
		&listing.Category,
		&listing.Location,
		&listing.SellerName,
		&listing.SellerPhone,
		&images,
		&listing.CreatedAt,
		&listing.UpdatedAt,
		&listing.IsActive,
	)
	if err != nil {
		return nil, err
	}

	if len(images) > 0 {
		if err := json.Unmarshal(images, &listing.Images); err != nil {
			return nil, fmt.Errorf("failed to decode images for listing %d: %w", listing.ID, err)
		}
	}
	if listing.Images == nil {
		listing.Images = []string{}
	}

	return &listing, nil
}
