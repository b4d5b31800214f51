package schools

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the school record does not exist.
var ErrNotFound = errors.New("schools: not found")

// Repository defines persistence operations for schools.
type Repository interface {
	Get(ctx context.Context, id int64) (*School, error)
	List(ctx context.Context, search string, limit, offset int) ([]School, int, error)
	Create(ctx context.Context, req SchoolRequest) (int64, error)
	Update(ctx context.Context, id int64, req SchoolRequest) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, id int64) (*School, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, region, notes, created_at, updated_at FROM schools WHERE id = $1`, id)
	s, err := scanSchool(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("schools: get: %w", err)
	}
	return s, nil
}

func (r *repository) List(ctx context.Context, search string, limit, offset int) ([]School, int, error) {
	where := "WHERE TRUE"
	var args []any
	argPos := 1
	if search != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", argPos)
		args = append(args, "%"+search+"%")
		argPos++
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM schools %s", where), args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("schools: count: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT id, name, region, notes, created_at, updated_at FROM schools %s ORDER BY name LIMIT $%d OFFSET $%d`,
		where, argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("schools: list: %w", err)
	}
	defer rows.Close()

	var result []School
	for rows.Next() {
		s, err := scanSchool(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("schools: scan: %w", err)
		}
		result = append(result, *s)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, req SchoolRequest) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO schools (name, region, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, NOW(), NOW()) RETURNING id`,
		req.Name, req.Region, req.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("schools: create: %w", err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, req SchoolRequest) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE schools SET name = $2, region = $3, notes = $4, updated_at = NOW() WHERE id = $1`,
		id, req.Name, req.Region, req.Notes)
	if err != nil {
		return fmt.Errorf("schools: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM schools WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("schools: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchool(row rowScanner) (*School, error) {
	var s School
	var region, notes pgtype.Text
	if err := row.Scan(&s.ID, &s.Name, &region, &notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if region.Valid {
		s.Region = &region.String
	}
	if notes.Valid {
		s.Notes = &notes.String
	}
	return &s, nil
}
