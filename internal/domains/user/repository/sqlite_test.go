package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/shared/testutil"
)

func newUser(username, email string) *model.User {
	return &model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		Role:         model.RoleMember,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestSQLiteRepositoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(testutil.NewSQLite(t, t.TempDir()))

	u := newUser("alice", "alice@example.com")
	require.NoError(t, repo.Create(ctx, u))

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)
	assert.Equal(t, "alice@example.com", byName.Email)
	assert.Equal(t, model.RoleMember, byName.Role)
	assert.True(t, u.CreatedAt.Equal(byName.CreatedAt))

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestSQLiteRepositoryNotFound(t *testing.T) {
	repo := NewSQLiteRepository(testutil.NewSQLite(t, t.TempDir()))

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestSQLiteRepositoryDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(testutil.NewSQLite(t, t.TempDir()))
	require.NoError(t, repo.Create(ctx, newUser("alice", "alice@example.com")))

	err := repo.Create(ctx, newUser("alice", "other@example.com"))
	assert.ErrorIs(t, err, model.ErrUsernameAlreadyExists)

	err = repo.Create(ctx, newUser("bob", "alice@example.com"))
	assert.ErrorIs(t, err, model.ErrEmailAlreadyExists)
}
