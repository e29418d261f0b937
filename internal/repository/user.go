// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"strings"

	"codeberg.org/oliverandrich/imagetext/internal/models"
)

// CreateUser inserts a new user and returns it with the assigned ID.
// The email is stored lowercased.
func (r *Repository) CreateUser(ctx context.Context, email, username, passwordHash string) (*models.User, error) {
	email = NormalizeEmail(email)
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, username, password_hash) VALUES (?, ?, ?)`,
		email, username, passwordHash)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetUserByID(ctx, id)
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by their normalized email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = ?`, NormalizeEmail(email))
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// EmailExists checks whether an account with the given email exists.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, NormalizeEmail(email))
	return exists, err
}

// CountUsers returns the total number of registered accounts.
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	return count, err
}

// DeleteUser deletes a user by ID.
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return err
}

// NormalizeEmail lowercases and trims an email address. All lookups and
// writes go through this so that case never causes duplicate accounts.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
