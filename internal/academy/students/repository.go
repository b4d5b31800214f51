package students

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the student record does not exist.
var ErrNotFound = errors.New("students: not found")

// Repository defines persistence operations for students.
type Repository interface {
	Get(ctx context.Context, id int64) (*Student, error)
	List(ctx context.Context, req ListStudentsRequest) ([]Student, int, error)
	Create(ctx context.Context, s Student) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Deactivate(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const studentColumns = `id, name, phone, parent_phone, school_id, grade, notes, is_active, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id int64) (*Student, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	s, err := scanStudent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("students: get: %w", err)
	}
	return s, nil
}

func (r *repository) List(ctx context.Context, req ListStudentsRequest) ([]Student, int, error) {
	conditions := []string{"TRUE"}
	var args []any
	argPos := 1

	if req.SchoolID != nil {
		conditions = append(conditions, fmt.Sprintf("school_id = $%d", argPos))
		args = append(args, *req.SchoolID)
		argPos++
	}
	if req.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *req.IsActive)
		argPos++
	}
	if req.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR phone ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+req.Search+"%")
		argPos++
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM students %s", whereClause), args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("students: count: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM students %s ORDER BY name LIMIT $%d OFFSET $%d`,
		studentColumns, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("students: list: %w", err)
	}
	defer rows.Close()

	var result []Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("students: scan: %w", err)
		}
		result = append(result, *s)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, s Student) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (name, phone, parent_phone, school_id, grade, notes, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE, NOW(), NOW())
		 RETURNING id`,
		s.Name, s.Phone, s.ParentPhone, s.SchoolID, s.Grade, s.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("students: create: %w", err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	query := "UPDATE students SET updated_at = NOW()"
	var args []any
	argPos := 1

	for _, col := range []string{"name", "phone", "parent_phone", "school_id", "grade", "notes", "is_active"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("students: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("students: deactivate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*Student, error) {
	var s Student
	var phone, parentPhone, notes pgtype.Text
	var schoolID pgtype.Int8
	if err := row.Scan(&s.ID, &s.Name, &phone, &parentPhone, &schoolID, &s.Grade,
		&notes, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if phone.Valid {
		s.Phone = &phone.String
	}
	if parentPhone.Valid {
		s.ParentPhone = &parentPhone.String
	}
	if schoolID.Valid {
		s.SchoolID = &schoolID.Int64
	}
	if notes.Valid {
		s.Notes = &notes.String
	}
	return &s, nil
}
