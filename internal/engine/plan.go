package engine

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/goblintools/goblin/internal/planner"
)

// BuildSortPlan plans moving every top-level file of root into its category
// directory. Collisions are already resolved in the returned plan.
func (e *Engine) BuildSortPlan(ctx context.Context, root string, includeOptional bool) (*planner.OperationPlan, error) {
	resolved, err := e.checkDir(root)
	if err != nil {
		return nil, err
	}
	return e.build(ctx, planner.SortStrategy{Root: resolved, IncludeOptional: includeOptional})
}

// BuildRenamePlan plans sequential names for entries, which must share one
// directory. Entries are numbered in the order given.
func (e *Engine) BuildRenamePlan(ctx context.Context, entries []planner.FileEntry, opts planner.RenameOptions) (*planner.OperationPlan, error) {
	return e.build(ctx, planner.RenameStrategy{Entries: entries, Options: opts})
}

// BuildSortThenRenamePlan plans a sort of root followed by per-category
// sequential renaming.
func (e *Engine) BuildSortThenRenamePlan(ctx context.Context, root string, opts planner.RenameOptions, includeOptional bool) (*planner.OperationPlan, error) {
	resolved, err := e.checkDir(root)
	if err != nil {
		return nil, err
	}
	return e.build(ctx, planner.SortRenameStrategy{Root: resolved, IncludeOptional: includeOptional, Options: opts})
}

// BuildFindReplacePlan plans renaming files by replacing find with replace in
// their names. Collisions are not resolved so they surface in validation.
func (e *Engine) BuildFindReplacePlan(ctx context.Context, paths []string, find, replace string, sanitize bool) (*planner.OperationPlan, *planner.Report, error) {
	entries, _, err := planner.FindReplace(planner.NewEntries(paths), find, replace, sanitize)
	if err != nil {
		return nil, nil, err
	}
	plan := planner.PlanFromEntries(planner.ModeRename, "", entries)
	return plan, e.ValidatePlan(ctx, plan), nil
}

// BuildExplicitRenamePlan plans renaming the file at path to name in the same
// directory.
func (e *Engine) BuildExplicitRenamePlan(ctx context.Context, path, name string, sanitize bool) (*planner.OperationPlan, *planner.Report, error) {
	entry, err := planner.ProposeName(planner.NewEntry(path), name, sanitize)
	if err != nil {
		return nil, nil, err
	}
	plan := planner.PlanFromEntries(planner.ModeRename, "", []planner.FileEntry{entry})
	return plan, e.ValidatePlan(ctx, plan), nil
}

// ListCandidates lists the top-level files of dir that pass filter.
func (e *Engine) ListCandidates(ctx context.Context, dir string, filter planner.Filter) ([]string, error) {
	resolved, err := e.checkDir(dir)
	if err != nil {
		return nil, err
	}
	return planner.ListCandidates(e.fs, resolved, filter, e.key())
}

// ValidatePlan checks plan without changing anything.
func (e *Engine) ValidatePlan(ctx context.Context, plan *planner.OperationPlan) *planner.Report {
	report := planner.NewValidator(e.fs, e.key()).Validate(plan)
	if !report.Valid {
		zerolog.Ctx(ctx).Debug().Int("errors", len(report.Errors)).Msg("plan invalid")
	}
	return report
}
