package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepository struct {
	accounts map[string]*Account
}

func (f *fakeRepository) FindByUsername(ctx context.Context, username string) (*Account, error) {
	acc, ok := f.accounts[username]
	if !ok {
		return nil, ErrNotFound
	}
	return acc, nil
}

func newFakeRepo(t *testing.T) *fakeRepository {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	return &fakeRepository{accounts: map[string]*Account{
		"alice": {ID: 1, Username: "alice", Name: "Alice", PasswordHash: string(hash), Level: 2, IsActive: true},
		"gone":  {ID: 2, Username: "gone", Name: "Gone", PasswordHash: string(hash), Level: 1, IsActive: false},
	}}
}

func TestServiceAuthenticate(t *testing.T) {
	ctx := context.Background()
	service := NewService(newFakeRepo(t))

	t.Run("valid credentials return the account", func(t *testing.T) {
		acc, err := service.Authenticate(ctx, "alice", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, int64(1), acc.ID)
		assert.Equal(t, 2, acc.Level)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		_, err := service.Authenticate(ctx, "alice", "wrong-horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username fails identically", func(t *testing.T) {
		_, err := service.Authenticate(ctx, "nobody", "correct-horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("deactivated account fails identically", func(t *testing.T) {
		_, err := service.Authenticate(ctx, "gone", "correct-horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
