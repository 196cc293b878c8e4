// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathTraversal is returned when a joined path escapes its base directory.
var ErrPathTraversal = errors.New("path escapes base directory")

// WithinBase reports an error unless target resolves inside base.
// The trailing separator keeps /uploads-evil from matching /uploads.
func WithinBase(base, target string) error {
	absBase, err := filepath.Abs(filepath.Clean(base))
	if err != nil {
		return fmt.Errorf("resolving base path: %w", err)
	}
	absTarget, err := filepath.Abs(filepath.Clean(target))
	if err != nil {
		return fmt.Errorf("resolving target path: %w", err)
	}
	if absTarget != absBase && !strings.HasPrefix(absTarget, absBase+string(filepath.Separator)) {
		return ErrPathTraversal
	}
	return nil
}

// SafeJoin joins parts onto base and rejects results outside base.
func SafeJoin(base string, parts ...string) (string, error) {
	full := filepath.Join(append([]string{base}, parts...)...)
	if err := WithinBase(base, full); err != nil {
		return "", err
	}
	return full, nil
}

// HasTraversal reports whether a relative path climbs out via "..".
func HasTraversal(p string) bool {
	cleaned := filepath.Clean(p)
	return cleaned == ".." ||
		strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) ||
		strings.Contains(cleaned, string(filepath.Separator)+".."+string(filepath.Separator)) ||
		strings.HasSuffix(cleaned, string(filepath.Separator)+"..")
}
