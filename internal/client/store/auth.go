package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/recipebook/internal/models"
)

// ErrInvalidTransition is returned when an auth state change is not allowed.
var ErrInvalidTransition = errors.New("invalid auth transition")

// AuthState is a snapshot of the AuthStore.
type AuthState struct {
	Status models.AuthStatus
	User   *models.User
}

// AuthStore tracks the authentication state. It starts in loading, settles
// on authenticated or unauthenticated and never goes back to loading.
type AuthStore struct {
	mu    sync.RWMutex
	state AuthState
}

func NewAuthStore() *AuthStore {
	return &AuthStore{state: AuthState{Status: models.AuthLoading}}
}

func (s *AuthStore) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *AuthStore) IsAuth() bool {
	return s.State().Status == models.AuthAuthenticated
}

// SetAuthState replaces the state. user is dropped unless status is
// authenticated.
func (s *AuthStore) SetAuthState(status models.AuthStatus, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch status {
	case models.AuthAuthenticated, models.AuthUnauthenticated:
	default:
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state.Status, status)
	}

	if status != models.AuthAuthenticated {
		user = nil
	}
	s.state = AuthState{Status: status, User: user}
	return nil
}
