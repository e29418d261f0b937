// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package token_test

import (
	"strings"
	"testing"
	"time"

	"codeberg.org/oliverandrich/imagetext/internal/models"
	"codeberg.org/oliverandrich/imagetext/internal/services/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := token.NewManager("test-secret", time.Hour)
	user := &models.User{ID: 1, Email: "test@example.com"}

	raw, err := m.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	email, err := m.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", email)
}

func TestVerify_TamperedSignature(t *testing.T) {
	m := token.NewManager("test-secret", time.Hour)

	raw, err := m.Issue(&models.User{Email: "test@example.com"})
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = m.Verify(tampered)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	m := token.NewManager("test-secret", time.Hour)
	other := token.NewManager("other-secret", time.Hour)

	raw, err := m.Issue(&models.User{Email: "test@example.com"})
	require.NoError(t, err)

	_, err = other.Verify(raw)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	m := token.NewManager("test-secret", -time.Minute)

	raw, err := m.Issue(&models.User{Email: "test@example.com"})
	require.NoError(t, err)

	_, err = m.Verify(raw)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	m := token.NewManager("test-secret", time.Hour)

	_, err := m.Verify("not-a-token")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}
