// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"github.com/labstack/echo/v4"
)

// message writes the uniform single-message error body.
func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"message": msg})
}

// fieldErrors writes field-level validation errors under "message",
// mirroring the single-message shape used everywhere else.
func fieldErrors(c echo.Context, status int, errs map[string][]string) error {
	return c.JSON(status, map[string]any{"message": errs})
}
