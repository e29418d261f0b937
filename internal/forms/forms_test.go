// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package forms_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/imagetext/internal/forms"
	"codeberg.org/oliverandrich/imagetext/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func validSignupForm() forms.SignupForm {
	return forms.SignupForm{
		Username:        "tester",
		Email:           "test@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestSignupForm_Valid(t *testing.T) {
	testutil.InitI18n(t)

	form := validSignupForm()
	errs := form.Validate(context.Background())

	assert.True(t, errs.Empty())
}

func TestSignupForm_Invalid(t *testing.T) {
	testutil.InitI18n(t)

	tests := []struct {
		name   string
		mutate func(*forms.SignupForm)
		field  string
	}{
		{"missing username", func(f *forms.SignupForm) { f.Username = "" }, "username"},
		{"username too short", func(f *forms.SignupForm) { f.Username = "a" }, "username"},
		{"username too long", func(f *forms.SignupForm) { f.Username = "abcdefghijk" }, "username"},
		{"missing email", func(f *forms.SignupForm) { f.Email = "" }, "email"},
		{"malformed email", func(f *forms.SignupForm) { f.Email = "not-an-email" }, "email"},
		{"email with display name", func(f *forms.SignupForm) { f.Email = "Test <test@example.com>" }, "email"},
		{"missing password", func(f *forms.SignupForm) { f.Password = "" }, "password"},
		{"password too short", func(f *forms.SignupForm) { f.Password = "abc"; f.ConfirmPassword = "abc" }, "password"},
		{"missing confirmation", func(f *forms.SignupForm) { f.ConfirmPassword = "" }, "confirm_password"},
		{"confirmation mismatch", func(f *forms.SignupForm) { f.ConfirmPassword = "different" }, "confirm_password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validSignupForm()
			tt.mutate(&form)

			errs := form.Validate(context.Background())

			assert.False(t, errs.Empty())
			assert.NotEmpty(t, errs[tt.field])
		})
	}
}

func TestSignupForm_UsernameBounds(t *testing.T) {
	testutil.InitI18n(t)

	for _, username := range []string{"ab", "abcdefghij"} {
		form := validSignupForm()
		form.Username = username

		errs := form.Validate(context.Background())

		assert.True(t, errs.Empty(), "username %q should be valid", username)
	}
}

func TestLoginForm(t *testing.T) {
	testutil.InitI18n(t)

	form := forms.LoginForm{Email: "test@example.com", Password: "secret1"}
	assert.True(t, form.Validate(context.Background()).Empty())

	form = forms.LoginForm{Email: "", Password: ""}
	errs := form.Validate(context.Background())
	assert.NotEmpty(t, errs["email"])
	assert.NotEmpty(t, errs["password"])

	form = forms.LoginForm{Email: "nope", Password: "secret1"}
	errs = form.Validate(context.Background())
	assert.NotEmpty(t, errs["email"])
}
