package planner

import (
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/goblintools/goblin/internal/naming"
)

// FindReplace edits the proposed names of entries by replacing every
// occurrence of find in the stem. Extensions are left alone. It returns the
// updated entries and how many of them changed. Entries are not mutated in
// place.
func FindReplace(entries []FileEntry, find, replace string, sanitize bool) ([]FileEntry, int, error) {
	if find == "" {
		return nil, 0, ErrEmptyFind
	}
	if strings.ContainsAny(replace, `/\`) {
		return nil, 0, ErrInvalidReplacement
	}

	out := make([]FileEntry, len(entries))
	changed := 0
	for i, e := range entries {
		out[i] = e
		proposed := e.ProposedPath
		if proposed == "" {
			proposed = e.SourcePath
		}
		stem, ext := naming.SplitExt(filepath.Base(proposed))
		if !strings.Contains(stem, find) {
			continue
		}
		name := strings.ReplaceAll(stem, find, replace) + ext
		if sanitize {
			name = naming.Sanitize(name)
		}
		next := filepath.Join(filepath.Dir(proposed), name)
		if name == "" {
			// Keep the trailing separator so validation sees an empty name.
			next = filepath.Dir(proposed) + string(filepath.Separator)
		}
		if next == e.ProposedPath {
			continue
		}
		out[i].ProposedPath = next
		out[i].Action = DeriveAction(e.SourcePath, next)
		changed++
	}
	return out, changed, nil
}

// ProposeName sets an explicit name for e, keeping it in its directory.
func ProposeName(e FileEntry, name string, sanitize bool) (FileEntry, error) {
	if strings.ContainsAny(name, `/\`) {
		return e, errors.Errorf("%w: %q", ErrInvalidName, name)
	}
	if sanitize {
		name = naming.Sanitize(name)
	}
	dir := filepath.Dir(e.SourcePath)
	e.ProposedPath = filepath.Join(dir, name)
	if name == "" {
		e.ProposedPath = dir + string(filepath.Separator)
	}
	e.Action = DeriveAction(e.SourcePath, e.ProposedPath)
	return e, nil
}
