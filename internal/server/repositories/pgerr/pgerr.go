// Package pgerr maps PostgreSQL driver failures onto the sentinel errors in
// common.
package pgerr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes we translate.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	CheckViolation      = "23514"
	InvalidTextRepr     = "22P02"
)

// Wrap classifies err and wraps it as "db error: ...". sql.ErrNoRows becomes
// common.ErrorNotFound; unique and foreign-key violations become
// common.ErrorConflict; check violations and malformed values (bad uuid)
// become common.ErrorValidation.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case UniqueViolation, ForeignKeyViolation:
			return fmt.Errorf("db error: %w: %s", common.ErrorConflict, pgErr.ConstraintName)
		case CheckViolation, InvalidTextRepr:
			return fmt.Errorf("db error: %w: %s", common.ErrorValidation, pgErr.Message)
		}
	}
	return fmt.Errorf("db error: %w", err)
}
