// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"codeberg.org/oliverandrich/imagetext/internal/database"
	"codeberg.org/oliverandrich/imagetext/internal/i18n"
	"codeberg.org/oliverandrich/imagetext/internal/models"
	"codeberg.org/oliverandrich/imagetext/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
	"golang.org/x/crypto/bcrypt"
)

var i18nOnce sync.Once

// InitI18n initializes the translation bundle once for the test binary.
func InitI18n(t *testing.T) {
	t.Helper()
	i18nOnce.Do(func() {
		if err := i18n.Init(); err != nil {
			t.Fatalf("i18n init: %v", err)
		}
	})
}

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestUser creates a test user with the given plaintext password.
func NewTestUser(t *testing.T, repo *repository.Repository, email, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := repo.CreateUser(context.Background(), email, username, string(hash))
	require.NoError(t, err)
	return user
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}
