package ingredients

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/dbx"
	"github.com/dmitrijs2005/recipebook/internal/models"
	"github.com/dmitrijs2005/recipebook/internal/server/repositories/pgerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, name, category, unit, price_per_unit, description`

type scanner interface {
	Scan(dest ...any) error
}

func scanIngredient(row scanner) (*models.Ingredient, error) {
	var (
		ing   models.Ingredient
		price sql.NullFloat64
		desc  sql.NullString
	)
	if err := row.Scan(&ing.ID, &ing.Name, &ing.Category, &ing.Unit, &price, &desc); err != nil {
		return nil, err
	}
	if price.Valid {
		ing.PricePerUnit = &price.Float64
	}
	if desc.Valid {
		ing.Description = &desc.String
	}
	return &ing, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Ingredient, error) {
	query := `SELECT ` + selectColumns + ` FROM ingredients ORDER BY lower(name), id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	result := make([]models.Ingredient, 0)
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Ingredient, error) {
	query := `SELECT ` + selectColumns + ` FROM ingredients WHERE id = $1`

	ing, err := scanIngredient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return ing, nil
}

func (r *PostgresRepository) Create(ctx context.Context, ing *models.Ingredient) (*models.Ingredient, error) {
	query :=
		`INSERT INTO ingredients (name, category, unit, price_per_unit, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		ing.Name, ing.Category, ing.Unit, ing.PricePerUnit, ing.Description).Scan(&ing.ID)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return ing, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return pgerr.Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
