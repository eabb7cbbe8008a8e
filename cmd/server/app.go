package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ecofinds/ecofinds-api/internal/config"
	"github.com/ecofinds/ecofinds-api/internal/platform/filestore"
	"github.com/ecofinds/ecofinds-api/internal/platform/postgres"
	"github.com/ecofinds/ecofinds-api/internal/service"
	"github.com/ecofinds/ecofinds-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	listingStore  store.ListingStore
	categoryStore store.CategoryStore

	// Blob store for uploaded images
	fileStore *filestore.FileStore

	// Services
	listingService *service.ListingService
}

// newApplication creates an application instance with all dependencies
// initialized: database pool, migrations applied, optional sample seed,
// file store, stores and services.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	fileStore, err := filestore.New(cfg.Upload.Dir, cfg.Upload.MaxWidth, cfg.Upload.MaxHeight, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize file store: %w", err)
	}

	listingStore := postgres.NewPostgresListingStore(db, logger)
	categoryStore := postgres.NewPostgresCategoryStore(db, logger)
	listingService := service.NewListingService(listingStore, categoryStore, logger)

	app := &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		listingStore:   listingStore,
		categoryStore:  categoryStore,
		fileStore:      fileStore,
		listingService: listingService,
	}

	if cfg.Seed.SampleListings {
		if err := app.seedSampleListings(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to seed sample listings: %w", err)
		}
	}

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
