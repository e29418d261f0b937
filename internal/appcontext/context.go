// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package appcontext provides the custom Echo context.
package appcontext

import (
	"codeberg.org/oliverandrich/imagetext/internal/models"
	"github.com/labstack/echo/v4"
)

// Context is a custom Echo context carrying the authenticated user.
type Context struct {
	echo.Context
	User *models.User // nil if not authenticated
}

// GetUser returns the authenticated user, or nil if not authenticated.
func (c *Context) GetUser() *models.User {
	return c.User
}

// IsAuthenticated returns true if the user is authenticated.
func (c *Context) IsAuthenticated() bool {
	return c.User != nil
}
