package session

import "context"

// Repository stores named session values (tokens, the signed-in email) in
// the local database.
type Repository interface {
	// Get returns "" when name is not stored.
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
	Clear(ctx context.Context) error
}
