// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package middleware contains Echo middleware for the API.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/imagetext/internal/appcontext"
	"codeberg.org/oliverandrich/imagetext/internal/i18n"
	"codeberg.org/oliverandrich/imagetext/internal/repository"
	"codeberg.org/oliverandrich/imagetext/internal/services/token"
	"github.com/labstack/echo/v4"
)

// RequireToken gates protected routes behind a bearer token. On success
// the resolved account is placed on the custom context; on any failure
// the request ends with 401 and the handler body never runs.
func RequireToken(tokens *token.Manager, repo *repository.Repository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": i18n.T(ctx, "AuthorizationRequired"),
				})
			}

			email, err := tokens.Verify(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"message": i18n.T(ctx, "InvalidToken"),
				})
			}

			// The token may outlive the account; a deleted account must
			// not authenticate.
			user, err := repo.GetUserByEmail(ctx, email)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return c.JSON(http.StatusUnauthorized, map[string]string{
						"message": i18n.T(ctx, "InvalidToken"),
					})
				}
				return err
			}

			cc := &appcontext.Context{Context: c, User: user}
			return next(cc)
		}
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	raw := strings.TrimSpace(header[len(prefix):])
	return raw, raw != ""
}
