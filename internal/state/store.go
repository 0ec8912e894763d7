package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"github.com/goblintools/goblin/internal/fsops"
)

// JournalStore provides an interface for persisting undo journals.
type JournalStore interface {
	// Load loads the journal with the given ID.
	// Returns os.ErrNotExist if the journal doesn't exist.
	Load(id string) (*Journal, error)

	// Save saves the journal atomically, replacing any previous one.
	Save(id string, journal *Journal) error

	// Delete deletes the journal. Deleting a missing journal is not an error.
	Delete(id string) error
}

// FileJournalStore implements JournalStore using JSON files on disk.
type FileJournalStore struct {
	fs  fsops.FS
	dir string
}

// NewFileJournalStore creates a new FileJournalStore rooted at dir.
func NewFileJournalStore(fs fsops.FS, dir string) *FileJournalStore {
	return &FileJournalStore{fs: fs, dir: dir}
}

func (s *FileJournalStore) path(id string) (string, error) {
	if err := s.fs.ValidateIdentifier(id); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, id+".json"), nil
}

// Load loads the journal with the given ID.
func (s *FileJournalStore) Load(id string) (*Journal, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, errors.Errorf("failed to read journal: %w", err)
	}

	var journal Journal
	if err := json.Unmarshal(data, &journal); err != nil {
		return nil, errors.Errorf("failed to unmarshal journal: %w", err)
	}
	if journal.Version > JournalVersion {
		return nil, errors.Errorf("journal version %d is newer than supported version %d", journal.Version, JournalVersion)
	}

	return &journal, nil
}

// Save saves the journal atomically.
func (s *FileJournalStore) Save(id string, journal *Journal) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(journal, "", "  ")
	if err != nil {
		return errors.Errorf("failed to marshal journal: %w", err)
	}

	if err := s.fs.AtomicWrite(path, data, 0644); err != nil {
		return errors.Errorf("failed to write journal: %w", err)
	}

	return nil
}

// Delete deletes the journal file.
func (s *FileJournalStore) Delete(id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Errorf("failed to delete journal: %w", err)
	}

	return nil
}

// MemoryJournalStore implements JournalStore in memory for testing.
type MemoryJournalStore struct {
	journals map[string]*Journal
}

// NewMemoryJournalStore creates an empty MemoryJournalStore.
func NewMemoryJournalStore() *MemoryJournalStore {
	return &MemoryJournalStore{journals: make(map[string]*Journal)}
}

// Load returns a copy of the stored journal.
func (s *MemoryJournalStore) Load(id string) (*Journal, error) {
	j, ok := s.journals[id]
	if !ok {
		return nil, os.ErrNotExist
	}
	out := *j
	out.Moves = append([]JournalMove(nil), j.Moves...)
	out.CreatedDirs = append([]string(nil), j.CreatedDirs...)
	return &out, nil
}

// Save stores the journal.
func (s *MemoryJournalStore) Save(id string, journal *Journal) error {
	s.journals[id] = journal
	return nil
}

// Delete removes the journal.
func (s *MemoryJournalStore) Delete(id string) error {
	delete(s.journals, id)
	return nil
}
