package engine

import "github.com/goblintools/goblin/internal/planner"

// ApplyRequest represents a request to apply a plan.
type ApplyRequest struct {
	// Plan is the plan to apply, normally from one of the Build*Plan methods
	Plan *planner.OperationPlan

	// DryRun validates only without making changes
	DryRun bool
}

// UndoRequest represents a request to undo the last batch applied to a root.
type UndoRequest struct {
	// Root is the directory the batch reorganized
	Root string

	// Force skips the checksum drift check
	Force bool

	// DryRun validates only without making changes
	DryRun bool
}
