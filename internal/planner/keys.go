package planner

import (
	"path/filepath"

	"golang.org/x/text/cases"
)

// KeyFunc maps a path to the key used for equality checks. Two paths with the
// same key are treated as the same file.
type KeyFunc func(path string) string

// ExactKey compares cleaned paths byte for byte.
func ExactKey(path string) string {
	return filepath.Clean(path)
}

// FoldedKey compares cleaned paths with Unicode case folding.
func FoldedKey(path string) string {
	return cases.Fold().String(filepath.Clean(path))
}

// KeyPolicy returns the key function for the configured case sensitivity.
func KeyPolicy(caseInsensitive bool) KeyFunc {
	if caseInsensitive {
		return FoldedKey
	}
	return ExactKey
}

// keySet is a set of path keys.
type keySet map[string]struct{}

func (s keySet) add(k string) { s[k] = struct{}{} }

func (s keySet) has(k string) bool {
	_, ok := s[k]
	return ok
}
