// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package handlers contains all HTTP handlers.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handlers contains the unauthenticated utility handlers.
type Handlers struct{}

// New creates a new Handlers instance.
func New() *Handlers {
	return &Handlers{}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
