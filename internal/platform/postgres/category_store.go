package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/platform/logger"
	"github.com/ecofinds/ecofinds-api/internal/store"
)

// PostgresCategoryStore implements the store.CategoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of
// the CategoryStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// GetAll implements store.CategoryStore.GetAll
// Rows come back in id order, which is seed order.
func (s *PostgresCategoryStore) GetAll(ctx context.Context) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, display_name, icon, description
		FROM categories
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to get categories", slog.String("error", err.Error()))
		return nil, store.NewStoreError("category", "list", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var category domain.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.DisplayName,
			&category.Icon,
			&category.Description,
		)
		if err != nil {
			return nil, store.NewStoreError("category", "list", MapError(err))
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("category", "list", MapError(err))
	}

	return categories, nil
}

// GetByName implements store.CategoryStore.GetByName
// Returns store.ErrCategoryNotFound if the category does not exist.
func (s *PostgresCategoryStore) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, display_name, icon, description
		FROM categories
		WHERE name = $1
	`

	var category domain.Category
	err := s.db.QueryRowContext(ctx, query, name).Scan(
		&category.ID,
		&category.Name,
		&category.DisplayName,
		&category.Icon,
		&category.Description,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("category not found", slog.String("name", name))
			return nil, store.ErrCategoryNotFound
		}
		log.Error("failed to get category",
			slog.String("error", err.Error()),
			slog.String("name", name))
		return nil, store.NewStoreError("category", "get", MapError(err))
	}

	return &category, nil
}
