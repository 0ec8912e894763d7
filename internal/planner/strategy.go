package planner

import (
	"path/filepath"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/goblintools/goblin/internal/category"
	"github.com/goblintools/goblin/internal/fsops"
	"github.com/goblintools/goblin/internal/naming"
)

// RenameOptions configures sequential renaming.
type RenameOptions struct {
	naming.Template `yaml:",inline"`

	// Sanitize makes generated names filesystem-legal
	Sanitize bool `json:"sanitize" yaml:"sanitize"`
}

// DefaultRenameOptions returns the default template with sanitization on.
func DefaultRenameOptions() RenameOptions {
	return RenameOptions{Template: naming.DefaultTemplate(), Sanitize: true}
}

// Validate rejects templates whose names would leave the source directory.
func (o RenameOptions) Validate() error {
	if strings.ContainsAny(o.Base, `/\`) || strings.ContainsAny(o.Separator, `/\`) {
		return errors.Errorf("%w: base %q, separator %q", ErrInvalidTemplate, o.Base, o.Separator)
	}
	return nil
}

// Strategy drafts a plan for one operation mode. Drafts have not been through
// collision resolution or validation.
type Strategy interface {
	Mode() Mode
	Draft(fs fsops.FS, key KeyFunc) (*OperationPlan, error)
}

// SortStrategy moves every top-level file of Root into Root/<Category>/.
type SortStrategy struct {
	Root            string
	IncludeOptional bool
}

// RenameStrategy gives Entries sequential names in their shared directory.
type RenameStrategy struct {
	Entries []FileEntry
	Options RenameOptions
}

// SortRenameStrategy sorts Root and then renames within each category with a
// counter that restarts per category.
type SortRenameStrategy struct {
	Root            string
	IncludeOptional bool
	Options         RenameOptions
}

func (SortStrategy) Mode() Mode       { return ModeSort }
func (RenameStrategy) Mode() Mode     { return ModeRename }
func (SortRenameStrategy) Mode() Mode { return ModeSortRename }

// Draft lists Root and proposes Root/<Category>/<name> for each file. Files
// are ordered by case-folded name.
func (s SortStrategy) Draft(fs fsops.FS, key KeyFunc) (*OperationPlan, error) {
	root, err := fsops.Resolve(s.Root)
	if err != nil {
		return nil, err
	}
	files, err := fs.ListFiles(root)
	if err != nil {
		return nil, errors.Errorf("failed to list %s: %w", root, err)
	}
	sortByName(files, key)

	plan := &OperationPlan{
		Mode:           ModeSort,
		RootDir:        root,
		Entries:        make([]FileEntry, 0, len(files)),
		Moves:          make([]Move, 0, len(files)),
		CategoryCounts: category.NewCounts(),
	}
	for _, path := range files {
		entry := NewEntry(path)
		entry.Category = category.Categorize(path, s.IncludeOptional)
		entry.ProposedPath = filepath.Join(root, string(entry.Category), entry.CurrentName)
		entry.Action = DeriveAction(entry.SourcePath, entry.ProposedPath)
		plan.CategoryCounts[entry.Category]++
		plan.Entries = append(plan.Entries, entry)
		if entry.Changed() {
			plan.Moves = append(plan.Moves, Move{Source: entry.SourcePath, Destination: entry.ProposedPath})
		}
	}
	return plan, nil
}

// Draft numbers the entries in the order given. Duplicate inputs are dropped,
// keeping the first occurrence.
func (s RenameStrategy) Draft(_ fsops.FS, key KeyFunc) (*OperationPlan, error) {
	if err := s.Options.Validate(); err != nil {
		return nil, err
	}
	entries := dedupeEntries(s.Entries, key)
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	dir := filepath.Dir(entries[0].SourcePath)
	for _, e := range entries[1:] {
		if key(filepath.Dir(e.SourcePath)) != key(dir) {
			return nil, errors.Errorf("%w: %s and %s", ErrMixedDirectories, dir, filepath.Dir(e.SourcePath))
		}
	}

	plan := &OperationPlan{
		Mode:    ModeRename,
		RootDir: dir,
		Entries: make([]FileEntry, 0, len(entries)),
		Moves:   make([]Move, 0, len(entries)),
	}
	for i, e := range entries {
		name := s.Options.SafeName(i, e.Extension, s.Options.Sanitize)
		e.ProposedPath = filepath.Join(dir, name)
		e.Action = DeriveAction(e.SourcePath, e.ProposedPath)
		e.Status = StatusOK
		plan.Entries = append(plan.Entries, e)
		if e.Changed() {
			plan.Moves = append(plan.Moves, Move{Source: e.SourcePath, Destination: e.ProposedPath})
		}
	}
	return plan, nil
}

// Draft composes a sort draft with per-category renaming. Entries are ordered
// by category rank, then by case-folded name.
func (s SortRenameStrategy) Draft(fs fsops.FS, key KeyFunc) (*OperationPlan, error) {
	if err := s.Options.Validate(); err != nil {
		return nil, err
	}
	sorted, err := SortStrategy{Root: s.Root, IncludeOptional: s.IncludeOptional}.Draft(fs, key)
	if err != nil {
		return nil, err
	}

	entries := append([]FileEntry(nil), sorted.Entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := category.Rank(entries[i].Category), category.Rank(entries[j].Category)
		if ri != rj {
			return ri < rj
		}
		return nameLess(entries[i].CurrentName, entries[j].CurrentName, key)
	})

	plan := &OperationPlan{
		Mode:           ModeSortRename,
		RootDir:        sorted.RootDir,
		Entries:        make([]FileEntry, 0, len(entries)),
		Moves:          make([]Move, 0, len(entries)),
		CategoryCounts: sorted.CategoryCounts,
	}
	counters := make(map[category.Category]int)
	for _, e := range entries {
		idx := counters[e.Category]
		counters[e.Category]++
		name := s.Options.SafeName(idx, e.Extension, s.Options.Sanitize)
		e.ProposedPath = filepath.Join(filepath.Dir(e.ProposedPath), name)
		e.Action = DeriveAction(e.SourcePath, e.ProposedPath)
		plan.Entries = append(plan.Entries, e)
		if e.Changed() {
			plan.Moves = append(plan.Moves, Move{Source: e.SourcePath, Destination: e.ProposedPath})
		}
	}
	return plan, nil
}

func dedupeEntries(entries []FileEntry, key KeyFunc) []FileEntry {
	seen := keySet{}
	out := make([]FileEntry, 0, len(entries))
	for _, e := range entries {
		k := key(e.SourcePath)
		if seen.has(k) {
			continue
		}
		seen.add(k)
		out = append(out, e)
	}
	return out
}

func nameLess(a, b string, key KeyFunc) bool {
	ka, kb := key(a), key(b)
	if ka != kb {
		return ka < kb
	}
	return a < b
}

func sortByName(paths []string, key KeyFunc) {
	sort.SliceStable(paths, func(i, j int) bool {
		return nameLess(filepath.Base(paths[i]), filepath.Base(paths[j]), key)
	})
}
