package fsops

import (
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Resolve returns the absolute, cleaned form of path. Symlinks in the
// longest existing prefix are evaluated so that a root and the paths under it
// compare consistently even when the root is reached through a link.
func Resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Errorf("failed to resolve %q: %w", path, err)
	}
	abs = filepath.Clean(abs)

	// Walk up to the first component that exists and evaluate links there.
	rest := ""
	cur := abs
	for {
		if resolved, err := filepath.EvalSymlinks(cur); err == nil {
			return filepath.Join(resolved, rest), nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return abs, nil
		}
		rest = filepath.Join(filepath.Base(cur), rest)
		cur = parent
	}
}

// WithinRoot reports whether path lies strictly inside root once both are resolved.
// The root itself is not considered inside.
func WithinRoot(path, root string) (bool, error) {
	absPath, err := Resolve(path)
	if err != nil {
		return false, err
	}
	absRoot, err := Resolve(root)
	if err != nil {
		return false, err
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return false, nil
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false, nil
	}
	return !filepath.IsAbs(rel), nil
}
