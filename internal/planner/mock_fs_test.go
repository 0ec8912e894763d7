package planner

import (
	"os"
	"path/filepath"

	"github.com/goblintools/goblin/internal/fsops"
)

// mockFS is a mock implementation of fsops.FS for testing.
// Only existence is modelled; listing returns the files registered in a directory.
type mockFS struct {
	exists map[string]bool
	errs   map[string]error
}

var _ fsops.FS = (*mockFS)(nil)

func newMockFS(paths ...string) *mockFS {
	m := &mockFS{exists: make(map[string]bool), errs: make(map[string]error)}
	for _, p := range paths {
		m.exists[p] = true
	}
	return m
}

func (m *mockFS) Exists(path string) (bool, error) {
	if err, ok := m.errs[path]; ok {
		return false, err
	}
	return m.exists[path], nil
}

func (m *mockFS) Lstat(path string) (os.FileInfo, error) {
	return nil, os.ErrNotExist
}

func (m *mockFS) Rename(oldpath, newpath string) error {
	return nil
}

func (m *mockFS) MkdirAll(path string, perm os.FileMode) error {
	return nil
}

func (m *mockFS) Remove(path string) error {
	return nil
}

func (m *mockFS) ListFiles(dir string) ([]string, error) {
	var files []string
	for p, ok := range m.exists {
		if ok && filepath.Dir(p) == dir {
			files = append(files, p)
		}
	}
	return files, nil
}

func (m *mockFS) IsEmptyDir(path string) (bool, error) {
	return false, nil
}

func (m *mockFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	return nil
}

func (m *mockFS) ReadFile(path string) ([]byte, error) {
	return nil, os.ErrNotExist
}

func (m *mockFS) ValidateIdentifier(id string) error {
	return nil
}
