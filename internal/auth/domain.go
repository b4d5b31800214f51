package auth

import "time"

// Account is a teacher login record. Accounts are soft-deactivated, never
// deleted, so historic audit rows keep a valid actor.
type Account struct {
	ID           int64
	Username     string
	Name         string
	PasswordHash string
	Level        int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
