package state

import "time"

// JournalVersion is the current journal schema version.
const JournalVersion = 1

// Journal is the undo record of one applied batch.
type Journal struct {
	// Version is the schema version the journal was written with
	Version int `json:"version"`

	// RootDir is the directory the batch reorganized
	RootDir string `json:"rootDir"`

	// Mode is the operation that produced the batch
	Mode string `json:"mode"`

	// AppliedAt is when the batch was committed
	AppliedAt time.Time `json:"appliedAt"`

	// Moves lists every file the batch moved, in batch order
	Moves []JournalMove `json:"moves"`

	// CreatedDirs lists directories the batch created, outermost first
	CreatedDirs []string `json:"createdDirs,omitempty"`
}

// JournalMove records where one file went.
type JournalMove struct {
	// Final is where the batch left the file
	Final string `json:"final"`

	// Original is where the file was before the batch
	Original string `json:"original"`

	// Checksum is the hash of the file at Final right after the batch
	Checksum string `json:"checksum,omitempty"`
}

// NewJournal creates an empty journal for root.
func NewJournal(root, mode string, appliedAt time.Time) *Journal {
	return &Journal{
		Version:   JournalVersion,
		RootDir:   root,
		Mode:      mode,
		AppliedAt: appliedAt,
		Moves:     []JournalMove{},
	}
}

// FinalPaths returns the Final path of every move, in order.
func (j *Journal) FinalPaths() []string {
	paths := make([]string, len(j.Moves))
	for i, m := range j.Moves {
		paths[i] = m.Final
	}
	return paths
}
