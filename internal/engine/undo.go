package engine

import (
	"context"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/goblintools/goblin/internal/fsops"
	"github.com/goblintools/goblin/internal/hash"
	"github.com/goblintools/goblin/internal/planner"
	"github.com/goblintools/goblin/internal/state"
)

// UndoLast reverses the last batch recorded for a root directory.
//
// Algorithm:
// 1. Load the journal for the root (must exist)
// 2. Unless forced, verify every moved file still has its recorded checksum
// 3. Validate the reverse mapping against the recorded root
// 4. Execute it with the two-phase executor
// 5. Remove directories the batch created that are now empty
// 6. Delete the journal
func (e *Engine) UndoLast(ctx context.Context, req *UndoRequest) (*UndoResult, error) {
	logger := zerolog.Ctx(ctx)

	// Step 1: Load the journal
	root, err := fsops.Resolve(req.Root)
	if err != nil {
		return nil, err
	}
	id, journal, err := e.loadJournal(root)
	if err != nil {
		return nil, err
	}
	result := &UndoResult{Journal: journal, DryRun: req.DryRun}

	// Step 2: Drift check
	if !req.Force {
		// Missing files are left to validation.
		_, modified, err := e.drift(ctx, journal)
		if err != nil {
			return nil, err
		}
		if len(modified) > 0 {
			return result, errors.Errorf("%w: %d file(s) modified since the batch, use --force to undo anyway: %v", ErrDrift, len(modified), modified)
		}
	}

	// Step 3: Validate
	reverse := make([]planner.Move, len(journal.Moves))
	for i, m := range journal.Moves {
		reverse[i] = planner.Move{Source: m.Final, Destination: m.Original}
	}
	plan := &planner.OperationPlan{
		Mode:    planner.ModeUndo,
		RootDir: journal.RootDir,
		Entries: []planner.FileEntry{},
		Moves:   reverse,
	}
	result.Report = e.ValidatePlan(ctx, plan)
	if !result.Report.Valid {
		return result, errors.Errorf("%w: %d problem(s)", ErrValidation, len(result.Report.Errors))
	}
	if req.DryRun {
		return result, nil
	}

	// Step 4: Execute
	txResult, err := e.executor.Undo(ctx, reverse)
	if err != nil {
		return result, errors.Errorf("failed to undo: %w", err)
	}
	result.Redo = txResult.Reverse

	// Step 5: Prune directories created by the batch, deepest first
	result.RemovedDirs = e.pruneDirs(ctx, journal.CreatedDirs)

	// Step 6: Delete the journal
	if err := e.journals.Delete(id); err != nil {
		return result, errors.Errorf("undo applied but journal not deleted: %w", err)
	}

	logger.Info().Str("root", journal.RootDir).Int("moves", len(reverse)).Msg("batch undone")
	return result, nil
}

// Status reports the undo journal recorded for root and whether the files it
// covers are still where and what the batch left them.
func (e *Engine) Status(ctx context.Context, root string) (*StatusResult, error) {
	resolved, err := fsops.Resolve(root)
	if err != nil {
		return nil, err
	}
	result := &StatusResult{Root: resolved, JournalID: state.ComputeJournalID(resolved)}

	_, journal, err := e.loadJournal(resolved)
	if err != nil {
		if errors.Is(err, ErrNoJournal) {
			return result, nil
		}
		return nil, err
	}
	result.Journal = journal

	result.Missing, result.Modified, err = e.drift(ctx, journal)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Engine) loadJournal(root string) (string, *state.Journal, error) {
	if e.journals == nil {
		return "", nil, ErrNoJournal
	}
	id := state.ComputeJournalID(root)
	journal, err := e.journals.Load(id)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, errors.Errorf("%w for %s", ErrNoJournal, root)
		}
		return "", nil, errors.Errorf("failed to load journal: %w", err)
	}
	return id, journal, nil
}

// drift lists journal files that are gone and files whose checksum changed.
// Moves recorded without a checksum are only checked for existence.
func (e *Engine) drift(ctx context.Context, journal *state.Journal) (missing, modified []string, err error) {
	var present []string
	for _, m := range journal.Moves {
		exists, err := e.fs.Exists(m.Final)
		if err != nil {
			return nil, nil, errors.Errorf("failed to check %s: %w", m.Final, err)
		}
		if !exists {
			missing = append(missing, m.Final)
			continue
		}
		if m.Checksum != "" {
			present = append(present, m.Final)
		}
	}
	if len(present) == 0 {
		return missing, nil, nil
	}

	sums, err := hash.HashFiles(ctx, e.hasher, present, hash.DefaultConcurrency)
	if err != nil {
		return nil, nil, err
	}
	for _, m := range journal.Moves {
		if sum, ok := sums[m.Final]; ok && sum != m.Checksum {
			modified = append(modified, m.Final)
		}
	}
	return missing, modified, nil
}

// pruneDirs removes the given directories that are empty, deepest first, and
// returns the ones removed. Failures are logged and skipped.
func (e *Engine) pruneDirs(ctx context.Context, dirs []string) []string {
	sorted := append([]string(nil), dirs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})

	var removed []string
	for _, dir := range sorted {
		empty, err := e.fs.IsEmptyDir(dir)
		if err != nil || !empty {
			continue
		}
		if err := e.fs.Remove(dir); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("dir", dir).Msg("failed to remove directory")
			continue
		}
		removed = append(removed, dir)
	}
	return removed
}
