// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package forms contains request form binding and validation.
package forms

import (
	"context"
	"net/mail"
	"unicode/utf8"

	"codeberg.org/oliverandrich/imagetext/internal/i18n"
)

// Validation policy for signup.
const (
	MinPasswordLength = 6
	MinUsernameLength = 2
	MaxUsernameLength = 10
)

// Errors maps field names to localized validation messages.
type Errors map[string][]string

// Empty reports whether no validation errors were recorded.
func (e Errors) Empty() bool {
	return len(e) == 0
}

func (e Errors) add(field, message string) {
	e[field] = append(e[field], message)
}

// SignupForm is the request body for account creation.
type SignupForm struct {
	Username        string `form:"username" json:"username"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

// Validate checks all fields and returns field-level errors.
func (f *SignupForm) Validate(ctx context.Context) Errors {
	errs := Errors{}

	if f.Username == "" {
		errs.add("username", i18n.T(ctx, "FieldRequired"))
	} else if n := utf8.RuneCountInString(f.Username); n < MinUsernameLength || n > MaxUsernameLength {
		errs.add("username", i18n.TData(ctx, "UsernameLength", map[string]any{
			"Min": MinUsernameLength,
			"Max": MaxUsernameLength,
		}))
	}

	validateEmail(ctx, f.Email, errs)

	if f.Password == "" {
		errs.add("password", i18n.T(ctx, "FieldRequired"))
	} else if len(f.Password) < MinPasswordLength {
		errs.add("password", i18n.TData(ctx, "PasswordTooShort", map[string]any{
			"Min": MinPasswordLength,
		}))
	}

	if f.ConfirmPassword == "" {
		errs.add("confirm_password", i18n.T(ctx, "FieldRequired"))
	} else if f.Password != "" && f.ConfirmPassword != f.Password {
		errs.add("confirm_password", i18n.T(ctx, "PasswordMismatch"))
	}

	return errs
}

// LoginForm is the request body for credential validation.
type LoginForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate checks all fields and returns field-level errors.
func (f *LoginForm) Validate(ctx context.Context) Errors {
	errs := Errors{}

	validateEmail(ctx, f.Email, errs)

	if f.Password == "" {
		errs.add("password", i18n.T(ctx, "FieldRequired"))
	}

	return errs
}

func validateEmail(ctx context.Context, email string, errs Errors) {
	if email == "" {
		errs.add("email", i18n.T(ctx, "FieldRequired"))
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		errs.add("email", i18n.T(ctx, "InvalidEmail"))
	}
}
