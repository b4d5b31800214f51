package authz

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps the registry and principals in memory. It implements both
// RegistryStore and PrincipalStore so one fixture serves registry, resolver
// and gate tests.
type fakeStore struct {
	mu           sync.Mutex
	levels       map[Task]Level
	principals   map[string][]Principal
	inserts      int
	getLevelErr  error
	setLevelErr  error
	findPrincErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		levels:     make(map[Task]Level),
		principals: make(map[string][]Principal),
	}
}

func (f *fakeStore) GetLevel(ctx context.Context, task Task) (Level, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getLevelErr != nil {
		return 0, f.getLevelErr
	}
	level, ok := f.levels[task]
	if !ok {
		return 0, ErrTaskNotRegistered
	}
	return level, nil
}

func (f *fakeStore) SetLevel(ctx context.Context, task Task, level Level) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setLevelErr != nil {
		return f.setLevelErr
	}
	if _, ok := f.levels[task]; !ok {
		return ErrTaskNotRegistered
	}
	f.levels[task] = level
	return nil
}

func (f *fakeStore) List(ctx context.Context) ([]PermissionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	records := make([]PermissionRecord, 0, len(f.levels))
	for task, level := range f.levels {
		records = append(records, PermissionRecord{Task: task, Level: level, UpdatedAt: time.Now()})
	}
	return records, nil
}

func (f *fakeStore) InsertDefault(ctx context.Context, task Task, level Level) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	if _, ok := f.levels[task]; ok {
		return nil
	}
	f.levels[task] = level
	return nil
}

func (f *fakeStore) FindPrincipal(ctx context.Context, username string) (Principal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findPrincErr != nil {
		return Principal{}, f.findPrincErr
	}
	matches := f.principals[username]
	switch len(matches) {
	case 0:
		return Principal{}, ErrPrincipalNotFound
	case 1:
		return matches[0], nil
	default:
		return Principal{}, ErrAmbiguousPrincipal
	}
}

func TestRegistrySeedIsIdempotent(t *testing.T) {
	store := newFakeStore()
	registry := NewRegistry(store, nil, nil)
	ctx := context.Background()

	require.NoError(t, registry.Seed(ctx))
	require.Len(t, store.levels, len(DefaultLevels()))

	// Adjust one task, then re-seed. The adjustment must survive.
	require.NoError(t, registry.SetRequiredLevel(ctx, 1, TaskStudentView, 3))
	require.NoError(t, registry.Seed(ctx))

	level, err := registry.GetRequiredLevel(ctx, TaskStudentView)
	require.NoError(t, err)
	assert.Equal(t, Level(3), level)
	assert.Len(t, store.levels, len(DefaultLevels()))
}

func TestRegistrySetRequiredLevel(t *testing.T) {
	store := newFakeStore()
	registry := NewRegistry(store, nil, nil)
	ctx := context.Background()
	require.NoError(t, registry.Seed(ctx))

	t.Run("persists a valid change", func(t *testing.T) {
		require.NoError(t, registry.SetRequiredLevel(ctx, 1, TaskHomeworkAdd, 3))
		level, err := registry.GetRequiredLevel(ctx, TaskHomeworkAdd)
		require.NoError(t, err)
		assert.Equal(t, Level(3), level)
	})

	t.Run("rejects out-of-range levels", func(t *testing.T) {
		assert.ErrorIs(t, registry.SetRequiredLevel(ctx, 1, TaskHomeworkAdd, 4), ErrInvalidLevel)
		assert.ErrorIs(t, registry.SetRequiredLevel(ctx, 1, TaskHomeworkAdd, -1), ErrInvalidLevel)
	})

	t.Run("rejects unknown tasks", func(t *testing.T) {
		err := registry.SetRequiredLevel(ctx, 1, Task("no_such_task"), 2)
		assert.ErrorIs(t, err, ErrTaskNotRegistered)
	})

	t.Run("permissions_view is immutable by identity", func(t *testing.T) {
		current, err := registry.GetRequiredLevel(ctx, TaskPermissionsView)
		require.NoError(t, err)

		// Writing back the value it already has still fails.
		assert.ErrorIs(t, registry.SetRequiredLevel(ctx, 1, TaskPermissionsView, current), ErrImmutableTask)
		assert.ErrorIs(t, registry.SetRequiredLevel(ctx, 1, TaskPermissionsView, 3), ErrImmutableTask)

		after, err := registry.GetRequiredLevel(ctx, TaskPermissionsView)
		require.NoError(t, err)
		assert.Equal(t, current, after)
	})
}

func TestRegistryListReturnsEveryTask(t *testing.T) {
	store := newFakeStore()
	registry := NewRegistry(store, nil, nil)
	ctx := context.Background()
	require.NoError(t, registry.Seed(ctx))

	records, err := registry.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, len(DefaultLevels()))

	seen := make(map[Task]bool, len(records))
	for _, rec := range records {
		assert.True(t, rec.Level.Valid())
		seen[rec.Task] = true
	}
	for task := range DefaultLevels() {
		assert.True(t, seen[task], "missing task %s", task)
	}
}
