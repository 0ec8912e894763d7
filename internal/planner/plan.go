package planner

import (
	"path/filepath"
	"strings"

	"github.com/goblintools/goblin/internal/category"
	"github.com/goblintools/goblin/internal/naming"
)

// Mode identifies the operation that produced a plan.
type Mode string

const (
	ModeSort       Mode = "sort"
	ModeRename     Mode = "rename"
	ModeSortRename Mode = "sort_rename"
	ModeUndo       Mode = "undo"
)

// Action is the display label describing what happens to a single file.
type Action string

const (
	ActionNoop       Action = "No-op"
	ActionRename     Action = "Rename"
	ActionMove       Action = "Move"
	ActionMoveRename Action = "Move+Rename"
)

// Status is the validation outcome of an entry. The zero value means OK.
type Status string

const (
	StatusOK              Status = ""
	StatusNoOp            Status = "no-op"
	StatusEmptyName       Status = "empty name"
	StatusIllegalName     Status = "illegal name"
	StatusIllegalChars    Status = "illegal chars"
	StatusReservedName    Status = "reserved name"
	StatusDuplicateTarget Status = "duplicate target"
	StatusTargetExists    Status = "target exists"
)

// Blocking reports whether the status prevents the plan from being applied.
func (s Status) Blocking() bool {
	return s != StatusOK && s != StatusNoOp
}

// Move relocates a single file. Both paths are absolute.
type Move struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// Reverse returns the move that undoes m.
func (m Move) Reverse() Move {
	return Move{Source: m.Destination, Destination: m.Source}
}

// IsIdentity reports whether the move leaves the file where it is.
func (m Move) IsIdentity() bool {
	return m.Source == m.Destination
}

// ReverseMoves returns the reverse of every move, in the same order.
func ReverseMoves(moves []Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[i] = m.Reverse()
	}
	return out
}

// FileEntry is the per-file view of a plan.
type FileEntry struct {
	// SourcePath is the absolute path of the file today
	SourcePath string `json:"source_path"`

	// CurrentName is the base name of SourcePath
	CurrentName string `json:"current_name"`

	// Extension is the lower-cased extension including the leading dot
	Extension string `json:"extension"`

	// Category is the bucket the file belongs to
	Category category.Category `json:"category"`

	// ProposedPath is where the file will end up
	ProposedPath string `json:"proposed_path"`

	// Status is set by validation
	Status Status `json:"status,omitempty"`

	// Action labels the change for display
	Action Action `json:"action"`
}

// NewEntry creates an entry for the file at path that proposes no change.
func NewEntry(path string) FileEntry {
	path = filepath.Clean(path)
	name := filepath.Base(path)
	_, ext := naming.SplitExt(name)
	return FileEntry{
		SourcePath:   path,
		CurrentName:  name,
		Extension:    strings.ToLower(ext),
		Category:     category.Other,
		ProposedPath: path,
		Action:       ActionNoop,
	}
}

// NewEntries creates entries for paths, preserving order.
func NewEntries(paths []string) []FileEntry {
	entries := make([]FileEntry, len(paths))
	for i, p := range paths {
		entries[i] = NewEntry(p)
	}
	return entries
}

// ProposedName returns the base name of ProposedPath, or "" when no name is proposed.
func (e FileEntry) ProposedName() string {
	if e.ProposedPath == "" || strings.HasSuffix(e.ProposedPath, string(filepath.Separator)) {
		return ""
	}
	return filepath.Base(e.ProposedPath)
}

// Changed reports whether the entry proposes a different path.
func (e FileEntry) Changed() bool {
	return e.ProposedPath != e.SourcePath
}

// OperationPlan is a proposed batch of moves along with the per-file view.
type OperationPlan struct {
	// Mode is the operation that produced the plan
	Mode Mode `json:"mode"`

	// RootDir bounds every source and destination
	RootDir string `json:"root_dir"`

	// Entries is the per-file view, possibly empty (undo plans)
	Entries []FileEntry `json:"entries"`

	// Moves are the changes to perform, in order
	Moves []Move `json:"moves"`

	// CategoryCounts counts entries per category for sort modes
	CategoryCounts map[category.Category]int `json:"category_counts,omitempty"`
}

// HasMoves reports whether the plan would change anything.
func (p *OperationPlan) HasMoves() bool {
	return len(p.Moves) > 0
}

// Clone returns a deep copy of the plan.
func (p *OperationPlan) Clone() *OperationPlan {
	out := *p
	out.Entries = append([]FileEntry(nil), p.Entries...)
	out.Moves = append([]Move(nil), p.Moves...)
	if p.CategoryCounts != nil {
		out.CategoryCounts = make(map[category.Category]int, len(p.CategoryCounts))
		for k, v := range p.CategoryCounts {
			out.CategoryCounts[k] = v
		}
	}
	return &out
}

// DeriveAction labels the change from src to dst.
func DeriveAction(src, dst string) Action {
	if src == dst {
		return ActionNoop
	}
	sameDir := filepath.Dir(src) == filepath.Dir(dst)
	sameName := filepath.Base(src) == filepath.Base(dst)
	switch {
	case sameDir:
		return ActionRename
	case sameName:
		return ActionMove
	default:
		return ActionMoveRename
	}
}

// PlanFromEntries builds a plan from caller-edited entries. Every changed entry
// becomes a move in entry order. Collisions are not resolved; validation
// reports them instead. An empty root defaults to the directory of the first
// entry.
func PlanFromEntries(mode Mode, root string, entries []FileEntry) *OperationPlan {
	if root == "" && len(entries) > 0 {
		root = filepath.Dir(entries[0].SourcePath)
	}
	plan := &OperationPlan{
		Mode:    mode,
		RootDir: root,
		Entries: make([]FileEntry, len(entries)),
		Moves:   []Move{},
	}
	for i, e := range entries {
		e.Action = DeriveAction(e.SourcePath, e.ProposedPath)
		e.Status = StatusOK
		plan.Entries[i] = e
		if e.Changed() {
			plan.Moves = append(plan.Moves, Move{Source: e.SourcePath, Destination: e.ProposedPath})
		}
	}
	return plan
}
