package txn

import (
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/goblintools/goblin/internal/planner"
)

var (
	// ErrEmptyBatch is returned when Apply is called with no moves.
	ErrEmptyBatch = errors.New("no moves to apply")

	// ErrMissingSource is returned when a source disappears before staging.
	ErrMissingSource = errors.New("source does not exist")

	// ErrDestinationExists is returned when a destination appears before landing.
	ErrDestinationExists = errors.New("destination already exists")
)

// Phase names the step of a transaction that failed.
type Phase string

const (
	PhaseStage Phase = "stage"
	PhaseMkdir Phase = "mkdir"
	PhaseLand  Phase = "land"
)

// ExecutionError reports a failed transaction. Every completed rename has been
// rolled back unless RollbackErrs is non-empty.
type ExecutionError struct {
	Phase        Phase
	Move         planner.Move
	Err          error
	RollbackErrs []error
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("%s %s -> %s: %v", e.Phase, e.Move.Source, e.Move.Destination, e.Err)
	if len(e.RollbackErrs) == 0 {
		return msg + " (rolled back)"
	}
	parts := make([]string, len(e.RollbackErrs))
	for i, err := range e.RollbackErrs {
		parts[i] = err.Error()
	}
	return msg + "; rollback incomplete: " + strings.Join(parts, "; ")
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// RolledBack reports whether the filesystem was restored to its prior state.
func (e *ExecutionError) RolledBack() bool {
	return len(e.RollbackErrs) == 0
}
