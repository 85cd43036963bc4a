package repomanager

import (
	"context"

	"github.com/dmitrijs2005/recipebook/internal/dbx"
	"github.com/dmitrijs2005/recipebook/internal/server/repositories/ingredients"
	"github.com/dmitrijs2005/recipebook/internal/server/repositories/memory"
	"github.com/dmitrijs2005/recipebook/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/recipebook/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/recipebook/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory. The handles
// passed to the factories only tell autocommit and transactional writes apart.
type InMemoryRepositoryManager struct {
	store *memory.Store
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{store: memory.NewStore()}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Transactor() dbx.Transactor { return m.store }

func (m *InMemoryRepositoryManager) Users(conn dbx.DBTX) users.Repository {
	return m.store.Users(conn)
}

func (m *InMemoryRepositoryManager) RefreshTokens(conn dbx.DBTX) refreshtokens.Repository {
	return m.store.RefreshTokens(conn)
}

func (m *InMemoryRepositoryManager) Ingredients(conn dbx.DBTX) ingredients.Repository {
	return m.store.Ingredients(conn)
}

func (m *InMemoryRepositoryManager) Recipes(conn dbx.DBTX) recipes.Repository {
	return m.store.Recipes(conn)
}
