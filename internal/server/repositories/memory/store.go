// Package memory implements every repository on top of process memory. It
// backs the server's "memory" storage mode and end-to-end tests.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/dmitrijs2005/recipebook/internal/dbx"
	"github.com/dmitrijs2005/recipebook/internal/models"
	servermodels "github.com/dmitrijs2005/recipebook/internal/server/models"
	"github.com/google/uuid"
)

type storedLine struct {
	id           string
	ingredientID string
	quantity     float64
}

type storedRecipe struct {
	recipe models.Recipe
	lines  []storedLine
	seq    int64
}

type state struct {
	users         map[string]servermodels.User
	refreshTokens map[string]servermodels.RefreshToken
	ingredients   map[string]models.Ingredient
	recipes       map[string]storedRecipe
	seq           int64
}

func (s state) clone() state {
	c := state{
		users:         maps.Clone(s.users),
		refreshTokens: maps.Clone(s.refreshTokens),
		ingredients:   maps.Clone(s.ingredients),
		recipes:       make(map[string]storedRecipe, len(s.recipes)),
		seq:           s.seq,
	}
	for id, r := range s.recipes {
		r.lines = append([]storedLine(nil), r.lines...)
		c.recipes[id] = r
	}
	return c
}

// Store holds all tables. The zero value is not usable; call NewStore.
type Store struct {
	mu    sync.RWMutex
	txMu  sync.Mutex
	st    state
	now   func() time.Time
	newID func() string
}

func NewStore() *Store {
	return &Store{
		st: state{
			users:         make(map[string]servermodels.User),
			refreshTokens: make(map[string]servermodels.RefreshToken),
			ingredients:   make(map[string]models.Ingredient),
			recipes:       make(map[string]storedRecipe),
		},
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// txConn is the handle InTx passes to fn. Repositories bound to it write
// without waiting for txMu, which the enclosing InTx already holds. Memory
// repositories never run SQL, so the embedded DBTX stays nil.
type txConn struct {
	dbx.DBTX
}

func isTx(conn dbx.DBTX) bool {
	_, ok := conn.(*txConn)
	return ok
}

// Conn returns nil; repositories bound to it write in autocommit mode.
func (s *Store) Conn() dbx.DBTX { return nil }

// InTx serialises units of work and restores the previous state when fn
// fails or panics. Autocommit writes wait for the open unit of work, so a
// rollback never discards them.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.st.clone()
	s.mu.RUnlock()

	defer func() {
		if p := recover(); p != nil {
			s.restore(snapshot)
			panic(p)
		}
		if err != nil {
			s.restore(snapshot)
		}
	}()

	return fn(ctx, &txConn{})
}

func (s *Store) restore(snapshot state) {
	s.mu.Lock()
	s.st = snapshot
	s.mu.Unlock()
}

// lockWrite takes the locks a write needs and returns the matching unlock.
func (s *Store) lockWrite(inTx bool) func() {
	if inTx {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

// The repository accessors bind to conn: pass the handle InTx provides
// inside a unit of work and Conn() outside of one.

func (s *Store) Users(conn dbx.DBTX) *UsersRepository {
	return &UsersRepository{s: s, tx: isTx(conn)}
}

func (s *Store) RefreshTokens(conn dbx.DBTX) *RefreshTokensRepository {
	return &RefreshTokensRepository{s: s, tx: isTx(conn)}
}

func (s *Store) Ingredients(conn dbx.DBTX) *IngredientsRepository {
	return &IngredientsRepository{s: s, tx: isTx(conn)}
}

func (s *Store) Recipes(conn dbx.DBTX) *RecipesRepository {
	return &RecipesRepository{s: s, tx: isTx(conn)}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneIngredient(i models.Ingredient) models.Ingredient {
	i.PricePerUnit = clonePtr(i.PricePerUnit)
	i.Description = clonePtr(i.Description)
	return i
}
