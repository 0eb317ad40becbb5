package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-users-backend/internal/domain"
)

// memRepo is an in-memory UserRepository with the same duplicate semantics
// as the gorm implementation.
type memRepo struct {
	users     []domain.User
	nextID    uint
	listCalls int
}

func newMemRepo() *memRepo { return &memRepo{nextID: 1} }

func (r *memRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicateUser
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.users = append(r.users, *u)
	return nil
}

func (r *memRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memRepo) List(_ context.Context) ([]domain.User, error) {
	r.listCalls++
	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func TestAccountService_Register(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewAccountService(repo)

	t.Run("new username succeeds and persists the row", func(t *testing.T) {
		require.NoError(t, svc.Register(ctx, "alice", "secret1"))

		u, err := repo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "alice", u.Username)
		assert.Equal(t, "secret1", u.Password)
	})

	t.Run("existing username fails regardless of password", func(t *testing.T) {
		err := svc.Register(ctx, "alice", "other")
		assert.ErrorIs(t, err, domain.ErrDuplicateUser)

		u, err := repo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "secret1", u.Password, "first registration must win")
	})
}

func TestAccountService_Authenticate(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewAccountService(repo)
	require.NoError(t, svc.Register(ctx, "alice", "Secret1"))

	t.Run("exact match succeeds with greeting", func(t *testing.T) {
		greeting, err := svc.Authenticate(ctx, "alice", "Secret1")
		require.NoError(t, err)
		assert.Equal(t, "welcome, alice", greeting)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("comparison is case-sensitive", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "alice", "secret1")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown user fails with the same error", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "bob", "Secret1")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
