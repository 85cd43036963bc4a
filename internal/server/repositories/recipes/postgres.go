package recipes

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

const linesQuery = `
	SELECT ri.recipe_id, ri.id, ri.ingredient_id, ri.quantity,
	       i.name, i.category, i.unit, i.price_per_unit, i.description
	FROM recipe_ingredients ri
	JOIN ingredients i ON i.id = ri.ingredient_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row scanner) (*models.Recipe, error) {
	var (
		r     models.Recipe
		desc  sql.NullString
		image sql.NullString
	)
	if err := row.Scan(&r.ID, &r.Name, &desc, &image, &r.CreatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		r.Description = &desc.String
	}
	if image.Valid {
		r.ImageURL = &image.String
	}
	r.Ingredients = make([]models.RecipeIngredient, 0)
	return &r, nil
}

// loadLines returns lines grouped by recipe id, in position order.
func (r *PostgresRepository) loadLines(ctx context.Context, where string, args ...any) (map[string][]models.RecipeIngredient, error) {
	rows, err := r.db.QueryContext(ctx, linesQuery+where+` ORDER BY ri.recipe_id, ri.position`, args...)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	lines := make(map[string][]models.RecipeIngredient)
	for rows.Next() {
		var (
			recipeID string
			line     models.RecipeIngredient
			ing      models.Ingredient
			price    sql.NullFloat64
			desc     sql.NullString
		)
		if err := rows.Scan(&recipeID, &line.ID, &line.IngredientID, &line.Quantity,
			&ing.Name, &ing.Category, &ing.Unit, &price, &desc); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		ing.ID = line.IngredientID
		if price.Valid {
			ing.PricePerUnit = &price.Float64
		}
		if desc.Valid {
			ing.Description = &desc.String
		}
		line.Ingredient = &ing
		lines[recipeID] = append(lines[recipeID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return lines, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Recipe, error) {
	query := `SELECT id, name, description, image_url, created_at FROM recipes ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	result := make([]models.Recipe, 0)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if len(result) == 0 {
		return result, nil
	}

	lines, err := r.loadLines(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range result {
		if l, ok := lines[result[i].ID]; ok {
			result[i].Ingredients = l
		}
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Recipe, error) {
	query := `SELECT id, name, description, image_url, created_at FROM recipes WHERE id = $1`

	rec, err := scanRecipe(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, pgerr.Wrap(err)
	}

	lines, err := r.loadLines(ctx, ` WHERE ri.recipe_id = $1`, id)
	if err != nil {
		return nil, err
	}
	if l, ok := lines[rec.ID]; ok {
		rec.Ingredients = l
	}
	return rec, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.Recipe) (*models.Recipe, error) {
	query :=
		`INSERT INTO recipes (name, description, image_url)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, rec.Name, rec.Description, rec.ImageURL).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return rec, nil
}

func (r *PostgresRepository) Update(ctx context.Context, rec *models.Recipe) error {
	query :=
		`UPDATE recipes SET name = $2, description = $3, image_url = $4, updated_at = now()
		 WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, rec.ID, rec.Name, rec.Description, rec.ImageURL)
	if err != nil {
		return pgerr.Wrap(err)
	}
	return requireOneRow(res)
}

func (r *PostgresRepository) ReplaceIngredients(ctx context.Context, recipeID string, lines []models.RecipeLine) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipeID); err != nil {
		return pgerr.Wrap(err)
	}

	insert :=
		`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity, position)
		 VALUES ($1, $2, $3, $4)`

	for i, l := range lines {
		if _, err := r.db.ExecContext(ctx, insert, recipeID, l.IngredientID, l.Quantity, i); err != nil {
			return pgerr.Wrap(err)
		}
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return pgerr.Wrap(err)
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
