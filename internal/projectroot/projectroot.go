// SPDX-License-Identifier: AGPL-3.0-or-later

// Package projectroot locates the enclosing git repository.
package projectroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no enclosing repository exists.
var ErrNotFound = errors.New("not inside a git repository")

// Find walks up from start until it finds a directory containing .git
// (a directory, or a file for worktrees and submodules).
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: %s", ErrNotFound, start)
		}
		dir = parent
	}
}

// GitDir returns the .git directory of root, or "" when .git is a file.
func GitDir(root string) string {
	path := filepath.Join(root, ".git")
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return ""
	}
	return path
}
