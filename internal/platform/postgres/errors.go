// Package postgres implements the store interfaces on top of a
// PostgreSQL database accessed through database/sql with the pgx driver.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ecofinds/ecofinds-api/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// MapError maps a database error to an appropriate store error.
// It wraps the original error to preserve context for debugging.
// All database operations route their errors through here so the
// service and API layers only ever see the store taxonomy.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ConstraintName, err,
			)
		case notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %v",
				store.ErrInvalidEntity, pgErr.ColumnName, err,
			)
		}
	}

	return err
}

// CheckRowsAffected examines the number of rows affected by a database
// operation. If no rows were affected, it returns notFoundErr. This is
// how UPDATE statements targeting one row by id report a missing row.
func CheckRowsAffected(result sql.Result, notFoundErr error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return notFoundErr
	}

	return nil
}
