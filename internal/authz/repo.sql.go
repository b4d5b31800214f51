package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore implements RegistryStore and PrincipalStore against PostgreSQL.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore constructs a PGStore backed by the provided pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// GetLevel fetches the required level for a task.
func (s *PGStore) GetLevel(ctx context.Context, task Task) (Level, error) {
	var level int
	err := s.pool.QueryRow(ctx,
		`SELECT level FROM permissions WHERE task = $1`, string(task),
	).Scan(&level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", ErrTaskNotRegistered, task)
		}
		return 0, fmt.Errorf("authz: get level: %w", err)
	}
	return Level(level), nil
}

// SetLevel updates the required level for an existing task.
func (s *PGStore) SetLevel(ctx context.Context, task Task, level Level) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE permissions SET level = $2, updated_at = NOW() WHERE task = $1`,
		string(task), int(level),
	)
	if err != nil {
		return fmt.Errorf("authz: set level: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotRegistered, task)
	}
	return nil
}

// List returns all permission records ordered by task.
func (s *PGStore) List(ctx context.Context) ([]PermissionRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT task, level, updated_at FROM permissions ORDER BY task`)
	if err != nil {
		return nil, fmt.Errorf("authz: list permissions: %w", err)
	}
	defer rows.Close()

	var records []PermissionRecord
	for rows.Next() {
		var rec PermissionRecord
		var level int
		if err := rows.Scan(&rec.Task, &level, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("authz: scan permission: %w", err)
		}
		rec.Level = Level(level)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// InsertDefault seeds a record only when the task has never been registered.
func (s *PGStore) InsertDefault(ctx context.Context, task Task, level Level) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO permissions (task, level, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (task) DO NOTHING`,
		string(task), int(level),
	)
	if err != nil {
		return fmt.Errorf("authz: seed %s: %w", task, err)
	}
	return nil
}

// FindPrincipal resolves a username to exactly one teacher record, reading the
// level fresh from the store. Zero rows is ErrPrincipalNotFound; more than one
// is ErrAmbiguousPrincipal and is reported, never silently collapsed.
func (s *PGStore) FindPrincipal(ctx context.Context, username string) (Principal, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, username, name, level, is_active FROM teachers WHERE username = $1`,
		username,
	)
	if err != nil {
		return Principal{}, fmt.Errorf("authz: find principal: %w", err)
	}
	defer rows.Close()

	var (
		found     bool
		principal Principal
		active    bool
	)
	for rows.Next() {
		if found {
			return Principal{}, fmt.Errorf("%w: %s", ErrAmbiguousPrincipal, username)
		}
		var level int
		if err := rows.Scan(&principal.ID, &principal.Username, &principal.Name, &level, &active); err != nil {
			return Principal{}, fmt.Errorf("authz: scan principal: %w", err)
		}
		principal.Level = Level(level)
		found = true
	}
	if err := rows.Err(); err != nil {
		return Principal{}, fmt.Errorf("authz: find principal: %w", err)
	}
	if !found {
		return Principal{}, fmt.Errorf("%w: %s", ErrPrincipalNotFound, username)
	}
	if !active {
		return Principal{}, fmt.Errorf("%w: %s", ErrPrincipalInactive, username)
	}
	return principal, nil
}

var (
	_ RegistryStore  = (*PGStore)(nil)
	_ PrincipalStore = (*PGStore)(nil)
)
