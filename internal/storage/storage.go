// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package storage archives uploaded images on local disk.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Archiver writes uploaded files into a directory. Filenames supplied by
// clients are sanitized and prefixed with a UUID so uploads never collide
// or escape the directory.
type Archiver struct {
	dir string
}

// NewArchiver creates an Archiver rooted at dir.
func NewArchiver(dir string) *Archiver {
	return &Archiver{dir: dir}
}

// Save writes data under a unique name derived from filename and returns
// the path of the stored file.
func (a *Archiver) Save(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(a.dir, 0o750); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s", uuid.New().String(), SanitizeFilename(filename))
	path := filepath.Join(a.dir, name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return path, nil
}

// SanitizeFilename strips path components and characters outside a safe
// set. An empty result falls back to "upload".
func SanitizeFilename(filename string) string {
	base := filepath.Base(filepath.Clean(filename))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}

	name := strings.Trim(b.String(), ".")
	if name == "" {
		return "upload"
	}
	return name
}
