package engine

import "gitlab.com/tozd/go/errors"

var (
	// ErrValidation indicates a plan failed validation and was not applied.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyPlan indicates a plan or reverse mapping with no moves.
	ErrEmptyPlan = errors.New("nothing to apply")

	// ErrNoJournal indicates there is no recorded batch to undo.
	ErrNoJournal = errors.New("no undo journal")

	// ErrDrift indicates files were modified after the batch that moved them.
	ErrDrift = errors.New("drift detected")

	// ErrNotDirectory indicates the root to reorganize is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrJournal indicates a batch was applied but its journal could not be saved.
	ErrJournal = errors.New("journal not saved")
)
