// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/oliverandrich/imagetext/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	dir := t.TempDir()
	a := storage.NewArchiver(dir)

	path, err := a.Save("scan.png", []byte("image-bytes"))

	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, "_scan.png"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
}

func TestSave_UniqueNames(t *testing.T) {
	a := storage.NewArchiver(t.TempDir())

	first, err := a.Save("scan.png", []byte("one"))
	require.NoError(t, err)
	second, err := a.Save("scan.png", []byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	a := storage.NewArchiver(dir)

	_, err := a.Save("scan.png", []byte("data"))

	require.NoError(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"scan.png", "scan.png"},
		{"../../etc/passwd", "passwd"},
		{"weird name!!.png", "weirdname.png"},
		{"ünïcödé.png", "ncd.png"},
		{"...", "upload"},
		{"", "upload"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, storage.SanitizeFilename(tt.in), "input %q", tt.in)
	}
}
