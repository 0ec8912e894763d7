// Package txn executes batches of moves as a single all-or-nothing transaction.
//
// Every batch runs in two phases. First each source is renamed to a unique
// staging name in its own directory, which frees every original name and makes
// swaps and cycles safe. Then each staged file is renamed to its destination.
// If any step fails, the completed renames are undone in reverse order and the
// directories created for the batch are removed.
package txn

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/goblintools/goblin/internal/fsops"
	"github.com/goblintools/goblin/internal/planner"
)

// Result describes a committed transaction.
type Result struct {
	// Reverse undoes the transaction when applied; it maps each destination
	// back to its source, in the original move order
	Reverse []planner.Move

	// CreatedDirs lists directories created for the batch, outermost first
	CreatedDirs []string
}

// Executor runs move batches against a filesystem.
type Executor struct {
	fs    fsops.FS
	token func() string
}

// NewExecutor creates an executor that stages files under random names.
func NewExecutor(fs fsops.FS) *Executor {
	return &Executor{
		fs: fs,
		token: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")
		},
	}
}

// WithTokenSource replaces the staging token generator. Tokens must be unique
// enough that collisions are rare; the executor retries on collision.
func (e *Executor) WithTokenSource(token func() string) *Executor {
	e.token = token
	return e
}

// tx tracks the progress of one Apply call.
type tx struct {
	moves   []planner.Move
	staged  []string // staged[i] is the staging path of moves[i]
	landed  int      // moves[:landed] are at their destination
	created []string
}

// Apply performs moves atomically. The moves are assumed to have been
// validated. The context is only consulted before the first rename; once a
// transaction starts it runs to commit or rollback.
func (e *Executor) Apply(ctx context.Context, moves []planner.Move) (*Result, error) {
	if len(moves) == 0 {
		return nil, ErrEmptyBatch
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	t := &tx{moves: moves, staged: make([]string, 0, len(moves))}

	// Phase 1: park every source under a staging name.
	for _, m := range moves {
		exists, err := e.fs.Exists(m.Source)
		if err != nil {
			return nil, e.fail(ctx, t, PhaseStage, m, err)
		}
		if !exists {
			return nil, e.fail(ctx, t, PhaseStage, m, ErrMissingSource)
		}
		temp, err := e.stagingPath(m.Source)
		if err != nil {
			return nil, e.fail(ctx, t, PhaseStage, m, err)
		}
		if err := e.fs.Rename(m.Source, temp); err != nil {
			return nil, e.fail(ctx, t, PhaseStage, m, err)
		}
		t.staged = append(t.staged, temp)
		logger.Trace().Str("source", m.Source).Str("staged", temp).Msg("staged")
	}

	// Phase 2: land each staged file at its destination.
	for i, m := range moves {
		if err := e.ensureDir(t, filepath.Dir(m.Destination)); err != nil {
			return nil, e.fail(ctx, t, PhaseMkdir, m, err)
		}
		exists, err := e.fs.Exists(m.Destination)
		if err != nil {
			return nil, e.fail(ctx, t, PhaseLand, m, err)
		}
		if exists {
			return nil, e.fail(ctx, t, PhaseLand, m, ErrDestinationExists)
		}
		if err := e.fs.Rename(t.staged[i], m.Destination); err != nil {
			return nil, e.fail(ctx, t, PhaseLand, m, err)
		}
		t.landed++
		logger.Trace().Str("source", m.Source).Str("destination", m.Destination).Msg("landed")
	}

	logger.Debug().Int("moves", len(moves)).Int("dirs_created", len(t.created)).Msg("transaction committed")
	return &Result{
		Reverse:     planner.ReverseMoves(moves),
		CreatedDirs: t.created,
	}, nil
}

// Undo applies a reverse mapping returned by Apply. It is Apply under another
// name: the reverse of a committed batch is itself a valid batch.
func (e *Executor) Undo(ctx context.Context, reverse []planner.Move) (*Result, error) {
	return e.Apply(ctx, reverse)
}

// stagingPath picks an unused staging name next to path.
func (e *Executor) stagingPath(path string) (string, error) {
	dir, name := filepath.Split(path)
	for attempt := 0; attempt < 8; attempt++ {
		candidate := filepath.Join(dir, fsops.StagingPrefix+e.token()+"__"+name)
		exists, err := e.fs.Exists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", errors.Errorf("no free staging name for %s", path)
}

// ensureDir creates dir if needed, recording each directory it creates.
func (e *Executor) ensureDir(t *tx, dir string) error {
	var missing []string
	for cur := dir; ; {
		exists, err := e.fs.Exists(cur)
		if err != nil {
			return err
		}
		if exists {
			break
		}
		missing = append(missing, cur)
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	if len(missing) == 0 {
		return nil
	}
	if err := e.fs.MkdirAll(dir, 0755); err != nil {
		// MkdirAll may stop part way; keep the levels it did create so
		// rollback removes them.
		for i := len(missing) - 1; i >= 0; i-- {
			if exists, xerr := e.fs.Exists(missing[i]); xerr == nil && exists {
				t.created = append(t.created, missing[i])
			}
		}
		return err
	}
	for i := len(missing) - 1; i >= 0; i-- {
		t.created = append(t.created, missing[i])
	}
	return nil
}

// fail rolls back t and wraps the cause.
func (e *Executor) fail(ctx context.Context, t *tx, phase Phase, m planner.Move, cause error) error {
	logger := zerolog.Ctx(ctx)
	logger.Warn().Err(cause).Str("phase", string(phase)).Str("source", m.Source).Msg("transaction failed, rolling back")

	rollbackErrs := e.rollback(t)
	for _, err := range rollbackErrs {
		logger.Error().Err(err).Msg("rollback step failed")
	}
	return &ExecutionError{Phase: phase, Move: m, Err: cause, RollbackErrs: rollbackErrs}
}

// rollback undoes landed renames, then staged renames, then created
// directories, each in reverse order. It keeps going after a failure.
func (e *Executor) rollback(t *tx) []error {
	var errs []error
	for i := t.landed - 1; i >= 0; i-- {
		m := t.moves[i]
		if err := e.fs.Rename(m.Destination, t.staged[i]); err != nil {
			errs = append(errs, errors.Errorf("restore %s: %w", m.Destination, err))
		}
	}
	for i := len(t.staged) - 1; i >= 0; i-- {
		m := t.moves[i]
		exists, err := e.fs.Exists(t.staged[i])
		if err != nil || !exists {
			continue
		}
		if err := e.fs.Rename(t.staged[i], m.Source); err != nil {
			errs = append(errs, errors.Errorf("unstage %s: %w", m.Source, err))
		}
	}
	for i := len(t.created) - 1; i >= 0; i-- {
		empty, err := e.fs.IsEmptyDir(t.created[i])
		if err != nil || !empty {
			continue
		}
		if err := e.fs.Remove(t.created[i]); err != nil {
			errs = append(errs, errors.Errorf("remove %s: %w", t.created[i], err))
		}
	}
	return errs
}
