// Package recipes stores recipes and their ordered ingredient lines.
package recipes

import (
	"context"

	"github.com/dmitrijs2005/recipebook/internal/models"
)

// Repository persists recipes. Reads return lines with the referenced
// ingredient resolved.
type Repository interface {
	// List returns all recipes, newest first.
	List(ctx context.Context) ([]models.Recipe, error)

	// Get returns common.ErrorNotFound for an unknown id.
	Get(ctx context.Context, id string) (*models.Recipe, error)

	// Create inserts the recipe row only and fills ID and CreatedAt.
	Create(ctx context.Context, r *models.Recipe) (*models.Recipe, error)

	// Update rewrites name, description and image of an existing recipe.
	Update(ctx context.Context, r *models.Recipe) error

	// ReplaceIngredients drops the recipe's lines and stores lines in order.
	ReplaceIngredients(ctx context.Context, recipeID string, lines []models.RecipeLine) error

	// Delete removes the recipe together with its lines.
	Delete(ctx context.Context, id string) error
}
