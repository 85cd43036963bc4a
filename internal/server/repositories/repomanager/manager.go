// Package repomanager vends repositories for a storage backend together with
// the Transactor services use to group writes.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/recipebook/internal/dbx"
	"github.com/dmitrijs2005/recipebook/internal/server/repositories/ingredients"
	"github.com/dmitrijs2005/recipebook/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/recipebook/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/recipebook/internal/server/repositories/users"
)

// RepositoryManager binds repositories to a handle obtained from Transactor,
// either the plain connection or the transaction passed to InTx.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Transactor() dbx.Transactor
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Ingredients(db dbx.DBTX) ingredients.Repository
	Recipes(db dbx.DBTX) recipes.Repository
}
