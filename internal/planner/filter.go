package planner

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"

	"github.com/goblintools/goblin/internal/fsops"
)

// ImageExtensions are the suffixes accepted by the images-only filter.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif", ".tga", ".dds", ".svg"}

// Filter selects candidate files from a directory listing.
// The zero value accepts every file.
type Filter struct {
	// ImagesOnly keeps only files with an ImageExtensions suffix
	ImagesOnly bool

	// Extensions keeps only files with one of these lower-case suffixes
	Extensions []string

	// Include keeps only names matching at least one glob
	Include []string

	// Exclude drops names matching any glob
	Exclude []string
}

// ParseExtensionFilter parses a comma separated list such as "png, .JPG" into
// lower-case suffixes with a leading dot.
func ParseExtensionFilter(raw string) []string {
	var exts []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" || part == "." {
			continue
		}
		if !strings.HasPrefix(part, ".") {
			part = "." + part
		}
		exts = append(exts, part)
	}
	return exts
}

// Validate checks that every glob is well formed.
func (f Filter) Validate() error {
	for _, pattern := range append(append([]string(nil), f.Include...), f.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("invalid pattern %q", pattern)
		}
	}
	return nil
}

// Match reports whether the file at path passes the filter.
func (f Filter) Match(path string) bool {
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(name))

	if f.ImagesOnly && !containsExt(ImageExtensions, ext) {
		return false
	}
	if len(f.Extensions) > 0 && !containsExt(f.Extensions, ext) {
		return false
	}
	if len(f.Include) > 0 && !matchAny(f.Include, name) {
		return false
	}
	return !matchAny(f.Exclude, name)
}

// Apply returns the paths that pass the filter, preserving order.
func (f Filter) Apply(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// ListCandidates lists the top-level files of dir that pass the filter,
// ordered by case-folded name.
func ListCandidates(fs fsops.FS, dir string, filter Filter, key KeyFunc) ([]string, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	root, err := fsops.Resolve(dir)
	if err != nil {
		return nil, err
	}
	files, err := fs.ListFiles(root)
	if err != nil {
		return nil, errors.Errorf("failed to list %s: %w", root, err)
	}
	files = filter.Apply(files)
	sortByName(files, key)
	return files, nil
}

func containsExt(exts []string, ext string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
