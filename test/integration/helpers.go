package integration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/goblintools/goblin/internal/clock"
	"github.com/goblintools/goblin/internal/config"
	"github.com/goblintools/goblin/internal/engine"
	"github.com/goblintools/goblin/internal/fsops"
	"github.com/goblintools/goblin/internal/state"
)

// testRoot is a directory that does not exist on the host, so path
// resolution leaves paths under it untouched.
const testRoot = "/goblin-integration/shots"

// testFS is a filesystem implementation that tracks files in memory for testing.
// It doubles as a content hasher so drift detection sees in-memory edits.
type testFS struct {
	mu         sync.Mutex
	files      map[string][]byte
	dirs       map[string]bool
	failRename map[string]error
	renames    int
}

func newTestFS() *testFS {
	return &testFS{
		files:      make(map[string][]byte),
		dirs:       map[string]bool{"/": true},
		failRename: make(map[string]error),
	}
}

// addFile creates a file and its parent directories.
func (fs *testFS) addFile(path, content string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.mkdirAll(filepath.Dir(path))
	fs.files[path] = []byte(content)
}

// content returns the content of path and whether it exists.
func (fs *testFS) content(path string) (string, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	data, ok := fs.files[path]
	return string(data), ok
}

// paths lists every file, sorted.
func (fs *testFS) paths() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	out := make([]string, 0, len(fs.files))
	for path := range fs.files {
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

func (fs *testFS) hasDir(path string) bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.dirs[path]
}

func (fs *testFS) Lstat(path string) (os.FileInfo, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.dirs[path] {
		return &mockFileInfo{name: filepath.Base(path), isDir: true, mode: os.ModeDir | 0755}, nil
	}
	if data, ok := fs.files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(len(data)), mode: 0644}, nil
	}
	return nil, &os.PathError{Op: "lstat", Path: path, Err: os.ErrNotExist}
}

func (fs *testFS) Exists(path string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	_, hasFile := fs.files[path]
	return hasFile || fs.dirs[path], nil
}

func (fs *testFS) Rename(oldpath, newpath string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if err, ok := fs.failRename[newpath]; ok {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: err}
	}
	data, ok := fs.files[oldpath]
	if !ok || !fs.dirs[filepath.Dir(newpath)] {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: os.ErrNotExist}
	}
	delete(fs.files, oldpath)
	fs.files[newpath] = data
	fs.renames++
	return nil
}

func (fs *testFS) MkdirAll(path string, perm os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for p := path; ; p = filepath.Dir(p) {
		if _, ok := fs.files[p]; ok {
			return &os.PathError{Op: "mkdir", Path: p, Err: os.ErrExist}
		}
		if p == filepath.Dir(p) {
			break
		}
	}
	fs.mkdirAll(path)
	return nil
}

func (fs *testFS) mkdirAll(path string) {
	for p := path; !fs.dirs[p]; p = filepath.Dir(p) {
		fs.dirs[p] = true
	}
}

func (fs *testFS) Remove(path string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.files[path]; ok {
		delete(fs.files, path)
		return nil
	}
	if !fs.dirs[path] {
		return &os.PathError{Op: "remove", Path: path, Err: os.ErrNotExist}
	}
	if !fs.emptyDir(path) {
		return &os.PathError{Op: "remove", Path: path, Err: os.ErrExist}
	}
	delete(fs.dirs, path)
	return nil
}

func (fs *testFS) ListFiles(dir string) ([]string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.dirs[dir] {
		return nil, &os.PathError{Op: "readdir", Path: dir, Err: os.ErrNotExist}
	}
	var out []string
	for path := range fs.files {
		if filepath.Dir(path) == dir && !strings.HasPrefix(filepath.Base(path), fsops.StagingPrefix) {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (fs *testFS) IsEmptyDir(path string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if !fs.dirs[path] {
		return false, &os.PathError{Op: "readdir", Path: path, Err: os.ErrNotExist}
	}
	return fs.emptyDir(path), nil
}

func (fs *testFS) emptyDir(path string) bool {
	for p := range fs.files {
		if filepath.Dir(p) == path {
			return false
		}
	}
	for p := range fs.dirs {
		if p != path && filepath.Dir(p) == path {
			return false
		}
	}
	return true
}

func (fs *testFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.mkdirAll(filepath.Dir(path))
	fs.files[path] = append([]byte(nil), data...)
	return nil
}

func (fs *testFS) ReadFile(path string) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	data, ok := fs.files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (fs *testFS) ValidateIdentifier(id string) error {
	return fsops.NewRealFS().ValidateIdentifier(id)
}

// HashFile hashes the in-memory content of path.
func (fs *testFS) HashFile(path string) (string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

type mockFileInfo struct {
	name  string
	size  int64
	mode  os.FileMode
	isDir bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() os.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() any           { return nil }

// setupTestEngine creates an engine backed by an in-memory filesystem and journal store.
func setupTestEngine(t *testing.T) (*engine.Engine, *testFS, *state.MemoryJournalStore) {
	t.Helper()
	fs := newTestFS()
	fs.mkdirAll(testRoot)
	journals := state.NewMemoryJournalStore()
	clk := clock.NewFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	eng := engine.New(fs, fs, clk, journals, config.DefaultSettings())
	return eng, fs, journals
}

// testContext returns a context whose logger writes to the test log.
func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return logger.WithContext(context.Background())
}

func at(parts ...string) string {
	return filepath.Join(append([]string{testRoot}, parts...)...)
}
