// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"codeberg.org/oliverandrich/imagetext/internal/forms"
	"codeberg.org/oliverandrich/imagetext/internal/i18n"
	"codeberg.org/oliverandrich/imagetext/internal/models"
	"codeberg.org/oliverandrich/imagetext/internal/services/auth"
	"codeberg.org/oliverandrich/imagetext/internal/services/token"
	"github.com/labstack/echo/v4"
)

// AuthHandlers contains handlers for signup and login.
type AuthHandlers struct {
	auth    *auth.Service
	tokens  *token.Manager
	baseURL string
}

// NewAuth creates a new AuthHandlers instance.
func NewAuth(authService *auth.Service, tokens *token.Manager, baseURL string) *AuthHandlers {
	return &AuthHandlers{
		auth:    authService,
		tokens:  tokens,
		baseURL: baseURL,
	}
}

// Signup creates a new account from form fields username, email,
// password and confirm_password.
func (h *AuthHandlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var form forms.SignupForm
	if err := c.Bind(&form); err != nil {
		return message(c, http.StatusBadRequest, "invalid request")
	}

	if errs := form.Validate(ctx); !errs.Empty() {
		return fieldErrors(c, http.StatusBadRequest, errs)
	}

	_, err := h.auth.Register(ctx, auth.RegisterParams{
		Email:    form.Email,
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			return message(c, http.StatusConflict, i18n.T(ctx, "EmailExists"))
		}
		slog.Error("signup_failed", "error", err, "email", form.Email)
		return message(c, http.StatusInternalServerError, "failed to create user")
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"message": i18n.T(ctx, "UserCreated"),
		"login":   h.baseURL + "/api/auth/login",
	})
}

// loginResponse is the account representation returned on login.
type loginResponse struct {
	*models.User
	AccessToken string `json:"access_token"`
}

// Login validates credentials and returns the account plus a fresh
// access token. Unknown email and wrong password produce the identical
// response so account existence never leaks.
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var form forms.LoginForm
	if err := c.Bind(&form); err != nil {
		return message(c, http.StatusBadRequest, "invalid request")
	}

	if errs := form.Validate(ctx); !errs.Empty() {
		return fieldErrors(c, http.StatusBadRequest, errs)
	}

	user, err := h.auth.Login(ctx, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return message(c, http.StatusUnauthorized, i18n.T(ctx, "InvalidCredentials"))
		}
		slog.Error("login_failed", "error", err)
		return message(c, http.StatusInternalServerError, "login failed")
	}

	accessToken, err := h.tokens.Issue(user)
	if err != nil {
		slog.Error("token_issue_failed", "error", err, "user_id", user.ID)
		return message(c, http.StatusInternalServerError, "login failed")
	}

	return c.JSON(http.StatusOK, loginResponse{
		User:        user,
		AccessToken: accessToken,
	})
}
