package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no account matched.
var ErrNotFound = errors.New("auth: account not found")

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*Account, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByUsername fetches an account by its login name.
func (r *PGRepository) FindByUsername(ctx context.Context, username string) (*Account, error) {
	var acc Account
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, name, password_hash, level, is_active, created_at, updated_at
		 FROM teachers WHERE username = $1`,
		username,
	).Scan(&acc.ID, &acc.Username, &acc.Name, &acc.PasswordHash, &acc.Level,
		&acc.IsActive, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("auth: find account: %w", err)
	}
	return &acc, nil
}

var _ Repository = (*PGRepository)(nil)
