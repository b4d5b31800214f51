package teachers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates the teacher record does not exist.
	ErrNotFound = errors.New("teachers: not found")
	// ErrUsernameTaken indicates a duplicate login name.
	ErrUsernameTaken = errors.New("teachers: username already exists")
)

// Repository defines persistence operations for teachers.
type Repository interface {
	Get(ctx context.Context, id int64) (*Teacher, error)
	List(ctx context.Context, req ListTeachersRequest) ([]Teacher, int, error)
	Create(ctx context.Context, t Teacher, passwordHash string) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	SetLevel(ctx context.Context, id int64, level int) error
	Deactivate(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const teacherColumns = `id, username, name, phone, level, is_active, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id int64) (*Teacher, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+teacherColumns+` FROM teachers WHERE id = $1`, id)
	t, err := scanTeacher(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("teachers: get: %w", err)
	}
	return t, nil
}

func (r *repository) List(ctx context.Context, req ListTeachersRequest) ([]Teacher, int, error) {
	conditions := []string{"TRUE"}
	var args []any
	argPos := 1

	if req.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argPos))
		args = append(args, *req.IsActive)
		argPos++
	}
	if req.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR username ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+req.Search+"%")
		argPos++
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM teachers %s", whereClause), args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("teachers: count: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM teachers %s ORDER BY name LIMIT $%d OFFSET $%d`,
		teacherColumns, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("teachers: list: %w", err)
	}
	defer rows.Close()

	var result []Teacher
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("teachers: scan: %w", err)
		}
		result = append(result, *t)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, t Teacher, passwordHash string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO teachers (username, name, phone, password_hash, level, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, TRUE, NOW(), NOW())
		 RETURNING id`,
		t.Username, t.Name, t.Phone, passwordHash, t.Level,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("teachers: create: %w", err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	query := "UPDATE teachers SET updated_at = NOW()"
	var args []any
	argPos := 1

	for _, col := range []string{"name", "phone"} {
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
		return fmt.Errorf("teachers: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetLevel is a plain single-row update; the gate reads the new value on the
// principal's very next request.
func (r *repository) SetLevel(ctx context.Context, id int64, level int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE teachers SET level = $2, updated_at = NOW() WHERE id = $1`, id, level)
	if err != nil {
		return fmt.Errorf("teachers: set level: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate soft-marks the account. Teacher rows are never deleted so audit
// history keeps a valid actor.
func (r *repository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE teachers SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("teachers: deactivate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeacher(row rowScanner) (*Teacher, error) {
	var t Teacher
	var phone pgtype.Text
	if err := row.Scan(&t.ID, &t.Username, &t.Name, &phone, &t.Level,
		&t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if phone.Valid {
		t.Phone = &phone.String
	}
	return &t, nil
}
