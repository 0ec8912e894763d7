package engine

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/goblintools/goblin/internal/fsops"
	"github.com/goblintools/goblin/internal/hash"
	"github.com/goblintools/goblin/internal/planner"
	"github.com/goblintools/goblin/internal/state"
	"github.com/goblintools/goblin/internal/txn"
)

// ApplyPlan validates and executes a plan as one transaction.
//
// Algorithm:
// 1. Reject empty plans
// 2. Validate; any problem aborts before the filesystem is touched
// 3. Execute the moves with the two-phase executor (all or nothing)
// 4. Record the undo journal for the plan's root
//
// If the journal cannot be saved the moves stay applied; the result still
// carries the reverse mapping and the error wraps ErrJournal.
func (e *Engine) ApplyPlan(ctx context.Context, req *ApplyRequest) (*ApplyResult, error) {
	plan := req.Plan

	// Step 1: Reject empty plans
	if plan == nil || !plan.HasMoves() {
		return nil, ErrEmptyPlan
	}

	// Step 2: Validate
	result := &ApplyResult{Plan: plan, DryRun: req.DryRun}
	result.Report = e.ValidatePlan(ctx, plan)
	if !result.Report.Valid {
		return result, errors.Errorf("%w: %d problem(s)", ErrValidation, len(result.Report.Errors))
	}
	if req.DryRun {
		return result, nil
	}

	// Step 3: Execute
	txResult, err := e.executor.Apply(ctx, plan.Moves)
	if err != nil {
		return result, errors.Errorf("failed to apply %s plan: %w", plan.Mode, err)
	}
	result.Reverse = txResult.Reverse
	result.CreatedDirs = txResult.CreatedDirs

	zerolog.Ctx(ctx).Info().
		Str("mode", string(plan.Mode)).
		Str("root", plan.RootDir).
		Int("moves", len(plan.Moves)).
		Msg("plan applied")

	// Step 4: Record the journal
	if !e.settings.Journal.Enabled || e.journals == nil {
		return result, nil
	}
	id, err := e.recordJournal(ctx, plan, txResult)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to record undo journal")
		return result, errors.Errorf("%w: %s", ErrJournal, err.Error())
	}
	result.JournalID = id
	return result, nil
}

// Undo applies a reverse mapping returned by ApplyPlan and returns the mapping
// that redoes it. The reverse mapping is validated like any other batch,
// against the deepest directory containing all of its paths.
func (e *Engine) Undo(ctx context.Context, reverse []planner.Move) ([]planner.Move, error) {
	if len(reverse) == 0 {
		return nil, ErrEmptyPlan
	}

	plan := &planner.OperationPlan{
		Mode:    planner.ModeUndo,
		RootDir: commonRoot(reverse),
		Entries: []planner.FileEntry{},
		Moves:   reverse,
	}
	report := e.ValidatePlan(ctx, plan)
	if !report.Valid {
		return nil, errors.Errorf("%w: %d problem(s): %v", ErrValidation, len(report.Errors), report.Errors)
	}

	txResult, err := e.executor.Undo(ctx, reverse)
	if err != nil {
		return nil, errors.Errorf("failed to undo: %w", err)
	}
	return txResult.Reverse, nil
}

// recordJournal stores the undo record for a committed batch and returns its ID.
func (e *Engine) recordJournal(ctx context.Context, plan *planner.OperationPlan, txResult *txn.Result) (string, error) {
	root, err := fsops.Resolve(plan.RootDir)
	if err != nil {
		return "", err
	}

	var sums map[string]string
	if e.settings.Journal.VerifyChecksums {
		finals := make([]string, len(plan.Moves))
		for i, m := range plan.Moves {
			finals[i] = m.Destination
		}
		sums, err = hash.HashFiles(ctx, e.hasher, finals, hash.DefaultConcurrency)
		if err != nil {
			return "", err
		}
	}

	journal := state.NewJournal(root, string(plan.Mode), e.clock.Now())
	for _, m := range plan.Moves {
		journal.Moves = append(journal.Moves, state.JournalMove{
			Final:    m.Destination,
			Original: m.Source,
			Checksum: sums[m.Destination],
		})
	}
	journal.CreatedDirs = txResult.CreatedDirs

	id := state.ComputeJournalID(root)
	if err := e.journals.Save(id, journal); err != nil {
		return "", err
	}
	zerolog.Ctx(ctx).Debug().Str("journal", id).Msg("undo journal recorded")
	return id, nil
}
