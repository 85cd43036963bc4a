package client

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/recipebook/internal/client/repositories/session"
	"github.com/dmitrijs2005/recipebook/internal/dbx"
)

// Tokens is the pair issued by sign-in and refresh.
type Tokens struct {
	Access  string
	Refresh string
}

// TokenStore keeps the current token pair. Load returns zero Tokens when
// nothing is stored.
type TokenStore interface {
	Load(ctx context.Context) (Tokens, error)
	Save(ctx context.Context, t Tokens) error
	Clear(ctx context.Context) error
}

type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens Tokens
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Load(ctx context.Context) (Tokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens, nil
}

func (s *MemoryTokenStore) Save(ctx context.Context, t Tokens) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = t
	return nil
}

func (s *MemoryTokenStore) Clear(ctx context.Context) error {
	return s.Save(ctx, Tokens{})
}

const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// SQLiteTokenStore persists tokens in the local database so a CLI restart
// keeps the session.
type SQLiteTokenStore struct {
	db *sql.DB
}

func NewSQLiteTokenStore(db *sql.DB) *SQLiteTokenStore {
	return &SQLiteTokenStore{db: db}
}

func (s *SQLiteTokenStore) Load(ctx context.Context) (Tokens, error) {
	repo := session.NewSQLiteRepository(s.db)

	access, err := repo.Get(ctx, accessTokenKey)
	if err != nil {
		return Tokens{}, err
	}
	refresh, err := repo.Get(ctx, refreshTokenKey)
	if err != nil {
		return Tokens{}, err
	}
	return Tokens{Access: access, Refresh: refresh}, nil
}

// Save writes both tokens in one transaction.
func (s *SQLiteTokenStore) Save(ctx context.Context, t Tokens) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := session.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, accessTokenKey, t.Access); err != nil {
			return err
		}
		return repo.Set(ctx, refreshTokenKey, t.Refresh)
	})
}

func (s *SQLiteTokenStore) Clear(ctx context.Context) error {
	return session.NewSQLiteRepository(s.db).Clear(ctx)
}
