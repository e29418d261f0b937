// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth implements account registration and credential validation.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"codeberg.org/oliverandrich/imagetext/internal/config"
	"codeberg.org/oliverandrich/imagetext/internal/models"
	"codeberg.org/oliverandrich/imagetext/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// dummyHash is used for constant-time login to prevent timing attacks
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

type Service struct {
	repo *repository.Repository
	cost int
}

func NewService(repo *repository.Repository, cfg *config.AuthConfig) *Service {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, cost: cost}
}

// RegisterParams holds the parameters for account registration. The
// fields are expected to be pre-validated by the forms layer.
type RegisterParams struct {
	Email    string
	Username string
	Password string
}

// Register creates a new account. The email is normalized to lowercase
// before the duplicate check and the insert, so the two always agree.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	email := repository.NormalizeEmail(params.Email)

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, email, params.Username, string(passwordHash))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("register_success", "user_id", user.ID, "email", email)

	return user, nil
}

// Login validates credentials and returns the account on success. Unknown
// email and wrong password are indistinguishable to the caller; both fail
// with ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform bcrypt comparison to prevent timing attacks
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.Warn("login_failed", "email", email, "reason", "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login_failed", "email", email, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	slog.Info("login_success", "user_id", user.ID, "email", user.Email)
	return user, nil
}
