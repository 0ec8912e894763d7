package planner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goblintools/goblin/internal/fsops"
	"github.com/goblintools/goblin/internal/naming"
)

// IssueCounts tallies entry-level problems by kind.
type IssueCounts struct {
	Empty     int `json:"empty"`
	Illegal   int `json:"illegal"`
	Reserved  int `json:"reserved"`
	Duplicate int `json:"duplicate"`
	Exists    int `json:"exists"`
	NoOp      int `json:"noop"`
}

// Report is the outcome of validating a plan. Validation never changes the plan.
type Report struct {
	// Valid is true when Errors is empty
	Valid bool `json:"valid"`

	// Errors lists every blocking problem in a human readable form
	Errors []string `json:"errors,omitempty"`

	// Statuses holds one status per plan entry, in entry order
	Statuses []Status `json:"statuses,omitempty"`

	Issues IssueCounts `json:"issues"`

	// ErrorCount is the number of entries with a blocking status
	ErrorCount int `json:"error_count"`

	// ChangeCount is the number of entries that would change
	ChangeCount int `json:"change_count"`
}

// Summary renders the issue counts on one line.
func (r *Report) Summary() string {
	return fmt.Sprintf("issues: dup %d, illegal %d, reserved %d, exists %d, empty %d",
		r.Issues.Duplicate, r.Issues.Illegal, r.Issues.Reserved, r.Issues.Exists, r.Issues.Empty)
}

// Validator checks plans against the filesystem.
type Validator struct {
	fs  fsops.FS
	key KeyFunc
}

// NewValidator creates a validator using key for path equality.
func NewValidator(fs fsops.FS, key KeyFunc) *Validator {
	return &Validator{fs: fs, key: key}
}

// Validate checks plan and reports every problem found. It checks the moves
// (sources exist, paths stay inside the root, destinations and sources are
// unique) and, when the plan carries entries, the proposed names.
func (v *Validator) Validate(plan *OperationPlan) *Report {
	report := &Report{}
	v.checkMoves(plan, report)
	if len(plan.Entries) > 0 {
		v.checkEntries(plan, report)
	}
	report.Valid = len(report.Errors) == 0
	return report
}

func (v *Validator) checkMoves(plan *OperationPlan, report *Report) {
	dsts := keySet{}
	srcs := keySet{}
	for _, m := range plan.Moves {
		exists, err := v.fs.Exists(m.Source)
		switch {
		case err != nil:
			report.addError("Cannot access source: %s (%v)", m.Source, err)
		case !exists:
			report.addError("Missing source: %s", m.Source)
		}

		if ok, err := fsops.WithinRoot(m.Source, plan.RootDir); err != nil || !ok {
			report.addError("Source outside root: %s", m.Source)
		}
		if ok, err := fsops.WithinRoot(m.Destination, plan.RootDir); err != nil || !ok {
			report.addError("Destination outside root: %s", m.Destination)
		}

		sk := v.resolvedKey(m.Source)
		if srcs.has(sk) {
			report.addError("Duplicate source: %s", m.Source)
		}
		srcs.add(sk)

		dk := v.resolvedKey(m.Destination)
		if dsts.has(dk) {
			report.addError("Duplicate destination: %s", m.Destination)
		}
		dsts.add(dk)
	}
}

func (v *Validator) checkEntries(plan *OperationPlan, report *Report) {
	statuses := make([]Status, len(plan.Entries))
	// Only files that move free up their path.
	sources := keySet{}
	for _, e := range plan.Entries {
		if e.Changed() {
			sources.add(v.key(e.SourcePath))
		}
	}

	buckets := make(map[string][]int)
	var order []string
	for i, e := range plan.Entries {
		if !e.Changed() {
			statuses[i] = StatusNoOp
			continue
		}
		if dir, ok := expectedDir(plan, e); ok && v.key(filepath.Dir(e.ProposedPath)) != v.key(dir) {
			statuses[i] = StatusIllegalChars
			continue
		}
		name := e.ProposedName()
		if name != e.CurrentName {
			if status := nameStatus(name); status != StatusOK {
				statuses[i] = status
				continue
			}
		}
		k := v.key(e.ProposedPath)
		if _, ok := buckets[k]; !ok {
			order = append(order, k)
		}
		buckets[k] = append(buckets[k], i)
	}

	for _, k := range order {
		idxs := buckets[k]
		if len(idxs) > 1 {
			for _, i := range idxs {
				statuses[i] = StatusDuplicateTarget
			}
			continue
		}
		i := idxs[0]
		if sources.has(k) {
			continue
		}
		exists, err := v.fs.Exists(plan.Entries[i].ProposedPath)
		if err != nil || exists {
			statuses[i] = StatusTargetExists
		}
	}

	for i, status := range statuses {
		e := plan.Entries[i]
		switch status {
		case StatusOK:
			report.ChangeCount++
			continue
		case StatusNoOp:
			report.Issues.NoOp++
			continue
		case StatusEmptyName:
			report.Issues.Empty++
		case StatusIllegalName, StatusIllegalChars:
			report.Issues.Illegal++
		case StatusReservedName:
			report.Issues.Reserved++
		case StatusDuplicateTarget:
			report.Issues.Duplicate++
		case StatusTargetExists:
			report.Issues.Exists++
		}
		report.ErrorCount++
		report.addError("%s: %s (%s)", e.CurrentName, status, e.ProposedPath)
	}
	report.Statuses = statuses
}

// expectedDir returns the directory a renamed entry must stay in. Only modes
// that generate names are constrained.
func expectedDir(plan *OperationPlan, e FileEntry) (string, bool) {
	switch plan.Mode {
	case ModeRename:
		return filepath.Dir(e.SourcePath), true
	case ModeSortRename:
		return filepath.Join(plan.RootDir, string(e.Category)), true
	}
	return "", false
}

// nameStatus checks a proposed file name on its own.
func nameStatus(name string) Status {
	switch {
	case strings.TrimSpace(name) == "":
		return StatusEmptyName
	case name == "." || name == "..":
		return StatusIllegalName
	case naming.HasIllegalChars(name):
		return StatusIllegalChars
	case naming.IsReserved(name):
		return StatusReservedName
	}
	return StatusOK
}

// resolvedKey keys a path after resolving links, falling back to the cleaned path.
func (v *Validator) resolvedKey(path string) string {
	if resolved, err := fsops.Resolve(path); err == nil {
		path = resolved
	}
	return v.key(path)
}

func (r *Report) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
