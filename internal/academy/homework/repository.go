package homework

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the assignment record does not exist.
var ErrNotFound = errors.New("homework: not found")

// Repository defines persistence operations for homework assignments.
type Repository interface {
	Get(ctx context.Context, id int64) (*Assignment, error)
	List(ctx context.Context, req ListAssignmentsRequest) ([]Assignment, int, error)
	Create(ctx context.Context, a Assignment) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const assignmentColumns = `id, subject_id, teacher_id, title, body, due_date, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id int64) (*Assignment, error) {
	var a Assignment
	err := r.pool.QueryRow(ctx,
		`SELECT `+assignmentColumns+` FROM homework WHERE id = $1`, id,
	).Scan(&a.ID, &a.SubjectID, &a.TeacherID, &a.Title, &a.Body, &a.DueDate, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("homework: get: %w", err)
	}
	return &a, nil
}

func (r *repository) List(ctx context.Context, req ListAssignmentsRequest) ([]Assignment, int, error) {
	conditions := []string{"TRUE"}
	var args []any
	argPos := 1

	if req.SubjectID > 0 {
		conditions = append(conditions, fmt.Sprintf("subject_id = $%d", argPos))
		args = append(args, req.SubjectID)
		argPos++
	}
	if req.TeacherID > 0 {
		conditions = append(conditions, fmt.Sprintf("teacher_id = $%d", argPos))
		args = append(args, req.TeacherID)
		argPos++
	}
	if req.DueBefore != nil {
		conditions = append(conditions, fmt.Sprintf("due_date <= $%d", argPos))
		args = append(args, *req.DueBefore)
		argPos++
	}
	if req.DueAfter != nil {
		conditions = append(conditions, fmt.Sprintf("due_date >= $%d", argPos))
		args = append(args, *req.DueAfter)
		argPos++
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM homework %s", whereClause), args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("homework: count: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM homework %s ORDER BY due_date DESC, id DESC LIMIT $%d OFFSET $%d`,
		assignmentColumns, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("homework: list: %w", err)
	}
	defer rows.Close()

	var result []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.SubjectID, &a.TeacherID, &a.Title, &a.Body,
			&a.DueDate, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("homework: scan: %w", err)
		}
		result = append(result, a)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, a Assignment) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO homework (subject_id, teacher_id, title, body, due_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		 RETURNING id`,
		a.SubjectID, a.TeacherID, a.Title, a.Body, a.DueDate,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("homework: create: %w", err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	query := "UPDATE homework SET updated_at = NOW()"
	var args []any
	argPos := 1

	for _, col := range []string{"subject_id", "title", "body", "due_date"} {
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
		return fmt.Errorf("homework: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM homework WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("homework: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
