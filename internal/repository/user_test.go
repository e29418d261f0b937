// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/imagetext/internal/repository"
	"codeberg.org/oliverandrich/imagetext/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "test@example.com", "tester", "hash")

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, "tester", user.Username)
	assert.NotZero(t, user.CreatedAt)
}

func TestCreateUser_NormalizesEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "  Test@Example.COM ", "tester", "hash")

	require.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, "test@example.com", "tester", "hash")
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, "TEST@example.com", "other", "hash")
	assert.Error(t, err)

	count, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetUserByEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, "test@example.com", "tester", "hash")
	require.NoError(t, err)

	retrieved, err := repo.GetUserByEmail(ctx, "Test@Example.com")

	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
	assert.Equal(t, "hash", retrieved.PasswordHash)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := repo.GetUserByEmail(ctx, "nobody@example.com")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetUserByID_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := repo.GetUserByID(ctx, 999)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEmailExists(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	exists, err := repo.EmailExists(ctx, "test@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.CreateUser(ctx, "test@example.com", "tester", "hash")
	require.NoError(t, err)

	exists, err = repo.EmailExists(ctx, "TEST@EXAMPLE.COM")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDeleteUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "test@example.com", "tester", "hash")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteUser(ctx, user.ID))

	_, err = repo.GetUserByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.com", repository.NormalizeEmail(" A@B.Com "))
	assert.Equal(t, "a@b.com", repository.NormalizeEmail("a@b.com"))
}
