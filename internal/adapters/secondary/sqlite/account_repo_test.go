package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-inference-service/internal/core/domain"
)

func openStore(t *testing.T) *AccountStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newAccount(email string) *domain.Account {
	return &domain.Account{
		ID:           uuid.New(),
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Username:     "driver",
		Email:        email,
		PasswordHash: "$2a$04$hash",
	}
}

func TestAccountStore_CreateAndGet(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	account := newAccount("driver@example.com")

	require.NoError(t, store.Create(ctx, account))

	byID, err := store.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, byID.ID)
	assert.Equal(t, account.Username, byID.Username)
	assert.Equal(t, account.PasswordHash, byID.PasswordHash)

	byEmail, err := store.GetByEmail(ctx, "driver@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byEmail.ID)
	assert.True(t, account.CreatedAt.Equal(byEmail.CreatedAt))
}

func TestAccountStore_DuplicateEmail(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newAccount("dup@example.com")))
	err := store.Create(ctx, newAccount("dup@example.com"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyRegistered)
}

func TestAccountStore_NotFound(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	_, err := store.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = store.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	assert.NoError(t, store.Ping(ctx))
}
