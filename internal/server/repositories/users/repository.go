// Package users declares the user repository and its PostgreSQL
// implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/recipebook/internal/server/models"
)

// Repository stores accounts. Users are never updated or deleted.
type Repository interface {
	// Create inserts user and fills its ID and CreatedAt. A duplicate email
	// yields common.ErrorConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns common.ErrorNotFound when no user has email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns common.ErrorNotFound when id is unknown.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
