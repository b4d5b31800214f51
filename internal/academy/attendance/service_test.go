package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	entries      map[int64]*Entry
	nextID       int64
	summaryCalls int
}

func newMockRepository() *mockRepository {
	return &mockRepository{entries: make(map[int64]*Entry), nextID: 1}
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Entry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (m *mockRepository) List(ctx context.Context, req ListEntriesRequest) ([]Entry, int, error) {
	var result []Entry
	for _, e := range m.entries {
		result = append(result, *e)
	}
	return result, len(result), nil
}

func (m *mockRepository) Create(ctx context.Context, e Entry) (int64, error) {
	for _, existing := range m.entries {
		if existing.StudentID == e.StudentID && existing.Date.Equal(e.Date) {
			return 0, ErrDuplicateEntry
		}
	}
	id := m.nextID
	m.nextID++
	e.ID = id
	m.entries[id] = &e
	return id, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, updates map[string]any) error {
	e, ok := m.entries[id]
	if !ok {
		return ErrNotFound
	}
	if v, ok := updates["status"]; ok {
		e.Status = Status(v.(string))
	}
	if v, ok := updates["note"]; ok {
		note := v.(string)
		e.Note = &note
	}
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.entries[id]; !ok {
		return ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *mockRepository) Summary(ctx context.Context, date time.Time) ([]SummaryRow, error) {
	m.summaryCalls++
	counts := SummaryRow{SchoolName: "Unassigned", Date: date}
	for _, e := range m.entries {
		if !e.Date.Equal(date) {
			continue
		}
		switch e.Status {
		case StatusPresent:
			counts.Present++
		case StatusLate:
			counts.Late++
		case StatusAbsent:
			counts.Absent++
		case StatusExcused:
			counts.Excused++
		}
	}
	return []SummaryRow{counts}, nil
}

func newTestService(t *testing.T) (*Service, *mockRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := newMockRepository()
	return NewService(repo, NewCache(client, time.Minute)), repo
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	entry, err := service.Create(ctx, 10, CreateEntryRequest{
		StudentID: 1, Date: "2026-03-02", Status: StatusPresent,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), entry.RecordedBy)
	assert.Equal(t, StatusPresent, entry.Status)

	t.Run("second entry for the same student and date conflicts", func(t *testing.T) {
		_, err := service.Create(ctx, 10, CreateEntryRequest{
			StudentID: 1, Date: "2026-03-02", Status: StatusLate,
		})
		assert.ErrorIs(t, err, ErrDuplicateEntry)
	})

	t.Run("bad date is rejected", func(t *testing.T) {
		_, err := service.Create(ctx, 10, CreateEntryRequest{
			StudentID: 2, Date: "02-03-2026", Status: StatusPresent,
		})
		assert.Error(t, err)
	})
}

func TestServiceSummaryCaching(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := service.Create(ctx, 10, CreateEntryRequest{
		StudentID: 1, Date: "2026-03-02", Status: StatusPresent,
	})
	require.NoError(t, err)
	callsAfterSetup := repo.summaryCalls

	rows, err := service.Summary(ctx, date)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Present)
	assert.Equal(t, callsAfterSetup+1, repo.summaryCalls)

	t.Run("second read is served from cache", func(t *testing.T) {
		rows, err := service.Summary(ctx, date)
		require.NoError(t, err)
		assert.Equal(t, 1, rows[0].Present)
		assert.Equal(t, callsAfterSetup+1, repo.summaryCalls)
	})

	t.Run("a write invalidates the cached summary", func(t *testing.T) {
		_, err := service.Create(ctx, 10, CreateEntryRequest{
			StudentID: 2, Date: "2026-03-02", Status: StatusAbsent,
		})
		require.NoError(t, err)

		rows, err := service.Summary(ctx, date)
		require.NoError(t, err)
		assert.Equal(t, 1, rows[0].Present)
		assert.Equal(t, 1, rows[0].Absent)
	})
}

func TestServiceSummaryWithoutRedis(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := NewService(repo, NewCache(nil, time.Minute))

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	rows, err := service.Summary(ctx, date)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, repo.summaryCalls)
}

func TestServiceUpdateStatus(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	entry, err := service.Create(ctx, 10, CreateEntryRequest{
		StudentID: 1, Date: "2026-03-02", Status: StatusAbsent,
	})
	require.NoError(t, err)

	excused := StatusExcused
	updated, err := service.Update(ctx, entry.ID, UpdateEntryRequest{Status: &excused})
	require.NoError(t, err)
	assert.Equal(t, StatusExcused, updated.Status)
}
