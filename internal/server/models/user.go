// Package models defines the server-side records persisted in the database
// that never cross the API boundary as-is.
package models

import "time"

// User is an account row. PasswordHash is an encoded argon2id hash.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
