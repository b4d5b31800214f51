package subjects

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the subject record does not exist.
var ErrNotFound = errors.New("subjects: not found")

// Repository defines persistence operations for subjects.
type Repository interface {
	Get(ctx context.Context, id int64) (*Subject, error)
	List(ctx context.Context) ([]Subject, error)
	Create(ctx context.Context, req SubjectRequest) (int64, error)
	Update(ctx context.Context, id int64, req SubjectRequest) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id int64) (*Subject, error) {
	var s Subject
	var description pgtype.Text
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM subjects WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("subjects: get: %w", err)
	}
	if description.Valid {
		s.Description = &description.String
	}
	return &s, nil
}

// List returns all subjects; the catalog is small enough not to paginate.
func (r *repository) List(ctx context.Context) ([]Subject, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, created_at, updated_at FROM subjects ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("subjects: list: %w", err)
	}
	defer rows.Close()

	var result []Subject
	for rows.Next() {
		var s Subject
		var description pgtype.Text
		if err := rows.Scan(&s.ID, &s.Name, &description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("subjects: scan: %w", err)
		}
		if description.Valid {
			s.Description = &description.String
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *repository) Create(ctx context.Context, req SubjectRequest) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO subjects (name, description, created_at, updated_at)
		 VALUES ($1, $2, NOW(), NOW()) RETURNING id`,
		req.Name, req.Description,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("subjects: create: %w", err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, req SubjectRequest) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE subjects SET name = $2, description = $3, updated_at = NOW() WHERE id = $1`,
		id, req.Name, req.Description)
	if err != nil {
		return fmt.Errorf("subjects: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("subjects: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
