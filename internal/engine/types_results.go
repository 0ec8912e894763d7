package engine

import (
	"fmt"

	"github.com/goblintools/goblin/internal/planner"
	"github.com/goblintools/goblin/internal/state"
)

// ApplyResult represents the result of applying a plan.
type ApplyResult struct {
	// Plan is the plan that was applied
	Plan *planner.OperationPlan `json:"plan"`

	// Report is the validation report for the plan
	Report *planner.Report `json:"report"`

	// Reverse maps each final path back to its original path (empty if DryRun)
	Reverse []planner.Move `json:"reverse,omitempty"`

	// CreatedDirs lists directories the batch created
	CreatedDirs []string `json:"created_dirs,omitempty"`

	// JournalID identifies the recorded undo journal (empty if not recorded)
	JournalID string `json:"journal_id,omitempty"`

	// DryRun is true when nothing was changed
	DryRun bool `json:"dry_run"`
}

// Message summarizes the result for display.
func (r *ApplyResult) Message() string {
	moves := len(r.Plan.Moves)
	switch {
	case r.DryRun:
		return fmt.Sprintf("Dry run: %d %s planned", moves, plural(moves, "move", "moves"))
	case len(r.Reverse) == 0:
		return "Nothing changed"
	default:
		return fmt.Sprintf("Applied %d %s", len(r.Reverse), plural(len(r.Reverse), "move", "moves"))
	}
}

// UndoResult represents the result of undoing the last batch.
type UndoResult struct {
	// Journal is the journal that was undone
	Journal *state.Journal `json:"journal"`

	// Report is the validation report for the undo batch
	Report *planner.Report `json:"report"`

	// Redo reapplies the undone batch (empty if DryRun)
	Redo []planner.Move `json:"redo,omitempty"`

	// RemovedDirs lists directories pruned after the undo
	RemovedDirs []string `json:"removed_dirs,omitempty"`

	// DryRun is true when nothing was changed
	DryRun bool `json:"dry_run"`
}

// Message summarizes the result for display.
func (r *UndoResult) Message() string {
	n := len(r.Journal.Moves)
	if r.DryRun {
		return fmt.Sprintf("Dry run: %d %s would be restored", n, plural(n, "file", "files"))
	}
	return fmt.Sprintf("Restored %d %s", n, plural(n, "file", "files"))
}

// StatusResult describes the undo journal recorded for a root.
type StatusResult struct {
	// Root is the resolved root directory
	Root string `json:"root"`

	// JournalID is the ID the journal is stored under
	JournalID string `json:"journal_id,omitempty"`

	// Journal is the recorded journal, nil if there is none
	Journal *state.Journal `json:"journal"`

	// Missing lists final paths that no longer exist
	Missing []string `json:"missing,omitempty"`

	// Modified lists final paths whose content changed since the batch
	Modified []string `json:"modified,omitempty"`
}

// HasJournal reports whether a batch can be undone.
func (r *StatusResult) HasJournal() bool {
	return r.Journal != nil
}

// Clean reports whether the journal can be undone without force.
func (r *StatusResult) Clean() bool {
	return len(r.Missing) == 0 && len(r.Modified) == 0
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
