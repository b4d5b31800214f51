package teachers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockRepository struct {
	teachers map[int64]*Teacher
	hashes   map[int64]string
	nextID   int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		teachers: make(map[int64]*Teacher),
		hashes:   make(map[int64]string),
		nextID:   1,
	}
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Teacher, error) {
	t, ok := m.teachers[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *mockRepository) List(ctx context.Context, req ListTeachersRequest) ([]Teacher, int, error) {
	var result []Teacher
	for _, t := range m.teachers {
		result = append(result, *t)
	}
	return result, len(result), nil
}

func (m *mockRepository) Create(ctx context.Context, t Teacher, passwordHash string) (int64, error) {
	for _, existing := range m.teachers {
		if existing.Username == t.Username {
			return 0, ErrUsernameTaken
		}
	}
	id := m.nextID
	m.nextID++
	t.ID = id
	m.teachers[id] = &t
	m.hashes[id] = passwordHash
	return id, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, updates map[string]any) error {
	t, ok := m.teachers[id]
	if !ok {
		return ErrNotFound
	}
	if v, ok := updates["name"]; ok {
		t.Name = v.(string)
	}
	if v, ok := updates["phone"]; ok {
		phone := v.(string)
		t.Phone = &phone
	}
	return nil
}

func (m *mockRepository) SetLevel(ctx context.Context, id int64, level int) error {
	t, ok := m.teachers[id]
	if !ok {
		return ErrNotFound
	}
	t.Level = level
	return nil
}

func (m *mockRepository) Deactivate(ctx context.Context, id int64) error {
	t, ok := m.teachers[id]
	if !ok {
		return ErrNotFound
	}
	t.IsActive = false
	return nil
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := NewService(repo, nil, nil)

	created, err := service.Create(ctx, CreateTeacherRequest{
		Username: "kim",
		Name:     "Kim",
		Password: "long-enough-pass",
		Level:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, "kim", created.Username)
	assert.True(t, created.IsActive)

	t.Run("password is stored hashed", func(t *testing.T) {
		hash := repo.hashes[created.ID]
		require.NotEmpty(t, hash)
		assert.NotEqual(t, "long-enough-pass", hash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("long-enough-pass")))
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		_, err := service.Create(ctx, CreateTeacherRequest{
			Username: "kim",
			Name:     "Other Kim",
			Password: "another-password",
			Level:    1,
		})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestServiceSetLevel(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := NewService(repo, nil, nil)

	created, err := service.Create(ctx, CreateTeacherRequest{
		Username: "lee", Name: "Lee", Password: "long-enough-pass", Level: 1,
	})
	require.NoError(t, err)

	updated, err := service.SetLevel(ctx, 99, created.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Level)

	t.Run("missing teacher", func(t *testing.T) {
		_, err := service.SetLevel(ctx, 99, 404, 2)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceDeleteDeactivates(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := NewService(repo, nil, nil)

	created, err := service.Create(ctx, CreateTeacherRequest{
		Username: "park", Name: "Park", Password: "long-enough-pass", Level: 2,
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))

	// The record survives, only deactivated.
	got, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestServiceUpdatePartial(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	service := NewService(repo, nil, nil)

	created, err := service.Create(ctx, CreateTeacherRequest{
		Username: "choi", Name: "Choi", Password: "long-enough-pass", Level: 1,
	})
	require.NoError(t, err)

	name := "Choi Renamed"
	updated, err := service.Update(ctx, created.ID, UpdateTeacherRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Choi Renamed", updated.Name)
	assert.Equal(t, created.Username, updated.Username)

	t.Run("empty update is a no-op", func(t *testing.T) {
		same, err := service.Update(ctx, created.ID, UpdateTeacherRequest{})
		require.NoError(t, err)
		assert.Equal(t, "Choi Renamed", same.Name)
	})
}
