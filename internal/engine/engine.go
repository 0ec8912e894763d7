// Package engine provides the core business logic for goblin operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. It drafts plans with the planner, resolves
// collisions, validates, hands moves to the transaction executor and records
// the undo journal.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Build*Plan: Draft and collision-resolve plans for each mode
//   - ApplyPlan/Undo: Validate then execute a batch atomically
//   - UndoLast/Status: Persisted undo journal per root directory
package engine

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/goblintools/goblin/internal/clock"
	"github.com/goblintools/goblin/internal/config"
	"github.com/goblintools/goblin/internal/fsops"
	"github.com/goblintools/goblin/internal/hash"
	"github.com/goblintools/goblin/internal/planner"
	"github.com/goblintools/goblin/internal/state"
	"github.com/goblintools/goblin/internal/txn"
)

// Engine orchestrates all goblin operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs       fsops.FS
	hasher   hash.Hasher
	clock    clock.Clock
	journals state.JournalStore
	settings config.Settings
	executor *txn.Executor
}

// New creates a new Engine with the given dependencies.
func New(
	fs fsops.FS,
	hasher hash.Hasher,
	clk clock.Clock,
	journals state.JournalStore,
	settings config.Settings,
) *Engine {
	return &Engine{
		fs:       fs,
		hasher:   hasher,
		clock:    clk,
		journals: journals,
		settings: settings,
		executor: txn.NewExecutor(fs),
	}
}

// WithExecutor replaces the transaction executor.
func (e *Engine) WithExecutor(executor *txn.Executor) *Engine {
	e.executor = executor
	return e
}

// Settings returns the settings the engine was created with.
func (e *Engine) Settings() config.Settings {
	return e.settings
}

func (e *Engine) key() planner.KeyFunc {
	return planner.KeyPolicy(e.settings.CaseInsensitive)
}

// checkDir resolves root and verifies it is an existing directory.
func (e *Engine) checkDir(root string) (string, error) {
	resolved, err := fsops.Resolve(root)
	if err != nil {
		return "", err
	}
	info, err := e.fs.Lstat(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Errorf("%w: %s", ErrNotDirectory, root)
		}
		return "", errors.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", errors.Errorf("%w: %s", ErrNotDirectory, root)
	}
	return resolved, nil
}

// build drafts a plan with strategy and resolves its collisions.
func (e *Engine) build(ctx context.Context, strategy planner.Strategy) (*planner.OperationPlan, error) {
	draft, err := strategy.Draft(e.fs, e.key())
	if err != nil {
		return nil, err
	}
	plan, err := planner.NewCollisionResolver(e.fs, e.key()).ResolvePlan(draft)
	if err != nil {
		return nil, errors.Errorf("failed to resolve collisions: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("mode", string(plan.Mode)).
		Str("root", plan.RootDir).
		Int("entries", len(plan.Entries)).
		Int("moves", len(plan.Moves)).
		Msg("plan built")
	return plan, nil
}
