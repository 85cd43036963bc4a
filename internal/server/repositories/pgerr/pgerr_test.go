package pgerr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil))
	assert.ErrorIs(t, Wrap(sql.ErrNoRows), common.ErrorNotFound)
	assert.ErrorIs(t, Wrap(fmt.Errorf("scan: %w", sql.ErrNoRows)), common.ErrorNotFound)

	unique := &pgconn.PgError{Code: UniqueViolation, ConstraintName: "users_email_key"}
	err := Wrap(unique)
	assert.ErrorIs(t, err, common.ErrorConflict)
	assert.Contains(t, err.Error(), "users_email_key")

	assert.ErrorIs(t, Wrap(&pgconn.PgError{Code: ForeignKeyViolation}), common.ErrorConflict)
	assert.ErrorIs(t, Wrap(&pgconn.PgError{Code: CheckViolation}), common.ErrorValidation)
	assert.ErrorIs(t, Wrap(&pgconn.PgError{Code: InvalidTextRepr}), common.ErrorValidation)

	other := Wrap(errors.New("db down"))
	assert.EqualError(t, other, "db error: db down")
	assert.Equal(t, common.KindUnknown, common.KindOf(other))
}
