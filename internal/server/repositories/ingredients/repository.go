// Package ingredients stores the shared ingredient catalog.
package ingredients

import (
	"context"

	"github.com/dmitrijs2005/recipebook/internal/models"
)

// Repository is the catalog store.
type Repository interface {
	// List returns every ingredient ordered by name.
	List(ctx context.Context) ([]models.Ingredient, error)

	// Get returns common.ErrorNotFound for an unknown id.
	Get(ctx context.Context, id string) (*models.Ingredient, error)

	// Create inserts ing and fills its ID.
	Create(ctx context.Context, ing *models.Ingredient) (*models.Ingredient, error)

	// Delete removes the ingredient. It returns common.ErrorNotFound when
	// nothing was deleted and common.ErrorConflict while recipe lines still
	// reference it.
	Delete(ctx context.Context, id string) error
}
