package memory

import (
	"context"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/server/models"
)

type UsersRepository struct {
	s  *Store
	tx bool
}

func (r *UsersRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	defer r.s.lockWrite(r.tx)()

	for _, u := range r.s.st.users {
		if u.Email == user.Email {
			return nil, common.ErrorConflict
		}
	}
	user.ID = r.s.newID()
	user.CreatedAt = r.s.now()
	r.s.st.users[user.ID] = *user
	return user, nil
}

func (r *UsersRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.st.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *UsersRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.st.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}
