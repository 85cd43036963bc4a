package memory

import (
	"context"
	"time"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/server/models"
)

type RefreshTokensRepository struct {
	s  *Store
	tx bool
}

func (r *RefreshTokensRepository) Create(_ context.Context, userID string, token string, validity time.Duration) error {
	defer r.s.lockWrite(r.tx)()

	if _, ok := r.s.st.users[userID]; !ok {
		return common.ErrorConflict
	}
	if _, ok := r.s.st.refreshTokens[token]; ok {
		return common.ErrorConflict
	}
	now := r.s.now()
	r.s.st.refreshTokens[token] = models.RefreshToken{
		ID:        r.s.newID(),
		UserID:    userID,
		Token:     token,
		Expires:   now.Add(validity),
		CreatedAt: now,
	}
	return nil
}

func (r *RefreshTokensRepository) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.st.refreshTokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *RefreshTokensRepository) Delete(_ context.Context, token string) error {
	defer r.s.lockWrite(r.tx)()

	delete(r.s.st.refreshTokens, token)
	return nil
}

func (r *RefreshTokensRepository) DeleteForUser(_ context.Context, userID string, token string) error {
	defer r.s.lockWrite(r.tx)()

	if t, ok := r.s.st.refreshTokens[token]; ok && t.UserID == userID {
		delete(r.s.st.refreshTokens, token)
	}
	return nil
}

func (r *RefreshTokensRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	defer r.s.lockWrite(r.tx)()

	var n int64
	for k, t := range r.s.st.refreshTokens {
		if t.Expires.Before(now) {
			delete(r.s.st.refreshTokens, k)
			n++
		}
	}
	return n, nil
}
