package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the attendance record does not exist.
var ErrNotFound = errors.New("attendance: not found")

// ErrDuplicateEntry indicates the student already has a record for that date.
var ErrDuplicateEntry = errors.New("attendance: duplicate entry")

// Repository defines persistence operations for attendance entries.
type Repository interface {
	Get(ctx context.Context, id int64) (*Entry, error)
	List(ctx context.Context, req ListEntriesRequest) ([]Entry, int, error)
	Create(ctx context.Context, e Entry) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context, date time.Time) ([]SummaryRow, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const entryColumns = `id, student_id, date, status, note, recorded_by, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id int64) (*Entry, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM attendance WHERE id = $1`, id)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("attendance: get: %w", err)
	}
	return e, nil
}

func (r *repository) List(ctx context.Context, req ListEntriesRequest) ([]Entry, int, error) {
	conditions := []string{"TRUE"}
	var args []any
	argPos := 1

	if req.StudentID > 0 {
		conditions = append(conditions, fmt.Sprintf("student_id = $%d", argPos))
		args = append(args, req.StudentID)
		argPos++
	}
	if req.From != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argPos))
		args = append(args, *req.From)
		argPos++
	}
	if req.To != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argPos))
		args = append(args, *req.To)
		argPos++
	}
	if req.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, string(req.Status))
		argPos++
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM attendance %s", whereClause), args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("attendance: count: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM attendance %s ORDER BY date DESC, id DESC LIMIT $%d OFFSET $%d`,
		entryColumns, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("attendance: list: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("attendance: scan: %w", err)
		}
		result = append(result, *e)
	}
	return result, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, e Entry) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO attendance (student_id, date, status, note, recorded_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		 ON CONFLICT (student_id, date) DO NOTHING
		 RETURNING id`,
		e.StudentID, e.Date, string(e.Status), e.Note, e.RecordedBy,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrDuplicateEntry
		}
		return 0, fmt.Errorf("attendance: create: %w", err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	query := "UPDATE attendance SET updated_at = NOW()"
	var args []any
	argPos := 1

	for _, col := range []string{"status", "note"} {
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
		return fmt.Errorf("attendance: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("attendance: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Summary aggregates per-school counts for one date. Students without a
// school fall into a single unassigned bucket.
func (r *repository) Summary(ctx context.Context, date time.Time) ([]SummaryRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT sc.id, COALESCE(sc.name, 'Unassigned'),
		        COUNT(*) FILTER (WHERE a.status = 'present'),
		        COUNT(*) FILTER (WHERE a.status = 'late'),
		        COUNT(*) FILTER (WHERE a.status = 'absent'),
		        COUNT(*) FILTER (WHERE a.status = 'excused')
		 FROM attendance a
		 JOIN students st ON st.id = a.student_id
		 LEFT JOIN schools sc ON sc.id = st.school_id
		 WHERE a.date = $1
		 GROUP BY sc.id, sc.name
		 ORDER BY COALESCE(sc.name, 'Unassigned')`, date)
	if err != nil {
		return nil, fmt.Errorf("attendance: summary: %w", err)
	}
	defer rows.Close()

	var result []SummaryRow
	for rows.Next() {
		var row SummaryRow
		var schoolID pgtype.Int8
		if err := rows.Scan(&schoolID, &row.SchoolName,
			&row.Present, &row.Late, &row.Absent, &row.Excused); err != nil {
			return nil, fmt.Errorf("attendance: summary scan: %w", err)
		}
		if schoolID.Valid {
			row.SchoolID = &schoolID.Int64
		}
		row.Date = date
		result = append(result, row)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var e Entry
	var note pgtype.Text
	var status string
	if err := row.Scan(&e.ID, &e.StudentID, &e.Date, &status, &note,
		&e.RecordedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Status = Status(status)
	if note.Valid {
		e.Note = &note.String
	}
	return &e, nil
}
