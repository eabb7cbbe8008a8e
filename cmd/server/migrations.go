package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/ecofinds/ecofinds-api/migrations"
)

// runMigrations applies any pending schema migrations from the embedded
// migration set. It is safe to call on every boot; goose tracks the
// applied version in the database.
func runMigrations(db *sql.DB, logger *slog.Logger) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	before, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	after, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	if after > before {
		logger.Info("Database migrations applied",
			"from_version", before,
			"to_version", after)
	} else {
		logger.Debug("Database schema up to date", "version", after)
	}
	return nil
}
