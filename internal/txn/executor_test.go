package txn

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goblintools/goblin/internal/fsops"
	"github.com/goblintools/goblin/internal/planner"
)

// faultFS wraps the real filesystem and fails selected renames.
type faultFS struct {
	fsops.FS
	renames int
	failAt  int // 1-based rename call to fail; 0 disables
	failDst string
}

var errInjected = errors.New("injected failure")

func (f *faultFS) Rename(oldpath, newpath string) error {
	f.renames++
	if f.failAt > 0 && f.renames == f.failAt {
		return errInjected
	}
	if f.failDst != "" && newpath == f.failDst {
		return errInjected
	}
	return f.FS.Rename(oldpath, newpath)
}

// partialMkdirFS creates the first missing level and then fails, like
// MkdirAll running out of space half way.
type partialMkdirFS struct {
	fsops.FS
	first string
}

func (f *partialMkdirFS) MkdirAll(path string, perm os.FileMode) error {
	if err := os.Mkdir(f.first, perm); err != nil {
		return err
	}
	return errInjected
}

func setupDir(t *testing.T, files map[string]string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

// snapshot returns every path under root mapped to file content ("" for dirs).
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		if d.IsDir() {
			out[rel+"/"] = ""
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestApply_SortIntoNewDirectories(t *testing.T) {
	root := setupDir(t, map[string]string{"a.png": "A", "b.mp4": "B"})
	moves := []planner.Move{
		{Source: filepath.Join(root, "a.png"), Destination: filepath.Join(root, "Images", "a.png")},
		{Source: filepath.Join(root, "b.mp4"), Destination: filepath.Join(root, "Videos", "b.mp4")},
	}

	result, err := NewExecutor(fsops.NewRealFS()).Apply(context.Background(), moves)

	require.NoError(t, err)
	assert.Equal(t, "A", readFile(t, filepath.Join(root, "Images", "a.png")))
	assert.Equal(t, "B", readFile(t, filepath.Join(root, "Videos", "b.mp4")))
	assert.Equal(t, planner.ReverseMoves(moves), result.Reverse)
	assert.Equal(t, []string{filepath.Join(root, "Images"), filepath.Join(root, "Videos")}, result.CreatedDirs)
}

func TestApply_Swap(t *testing.T) {
	root := setupDir(t, map[string]string{"a.png": "A", "b.png": "B"})
	a, b := filepath.Join(root, "a.png"), filepath.Join(root, "b.png")

	_, err := NewExecutor(fsops.NewRealFS()).Apply(context.Background(), []planner.Move{
		{Source: a, Destination: b},
		{Source: b, Destination: a},
	})

	require.NoError(t, err)
	assert.Equal(t, "B", readFile(t, a))
	assert.Equal(t, "A", readFile(t, b))
	assert.Equal(t, map[string]string{"a.png": "B", "b.png": "A"}, snapshot(t, root))
}

func TestApply_ThreeCycle(t *testing.T) {
	root := setupDir(t, map[string]string{"a": "1", "b": "2", "c": "3"})
	p := func(n string) string { return filepath.Join(root, n) }

	_, err := NewExecutor(fsops.NewRealFS()).Apply(context.Background(), []planner.Move{
		{Source: p("a"), Destination: p("b")},
		{Source: p("b"), Destination: p("c")},
		{Source: p("c"), Destination: p("a")},
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "3", "b": "1", "c": "2"}, snapshot(t, root))
}

func TestApply_RoundTrip(t *testing.T) {
	root := setupDir(t, map[string]string{"hero.png": "H", "bg.jpg": "G", "notes.txt": "N"})
	before := snapshot(t, root)
	exec := NewExecutor(fsops.NewRealFS())
	moves := []planner.Move{
		{Source: filepath.Join(root, "hero.png"), Destination: filepath.Join(root, "Images", "asset_001.png")},
		{Source: filepath.Join(root, "bg.jpg"), Destination: filepath.Join(root, "Images", "asset_002.jpg")},
		{Source: filepath.Join(root, "notes.txt"), Destination: filepath.Join(root, "Documents", "notes.txt")},
	}

	result, err := exec.Apply(context.Background(), moves)
	require.NoError(t, err)

	redo, err := exec.Undo(context.Background(), result.Reverse)
	require.NoError(t, err)
	assert.Equal(t, moves, redo.Reverse)

	// Directories created by the forward batch are left empty behind.
	after := snapshot(t, root)
	delete(after, "Images/")
	delete(after, "Documents/")
	assert.Equal(t, before, after)
}

func TestApply_RollbackOnLandingFailure(t *testing.T) {
	for _, failAt := range []int{1, 2, 3, 4, 5, 6} {
		t.Run(fmt.Sprintf("rename_%d", failAt), func(t *testing.T) {
			root := setupDir(t, map[string]string{"a.png": "A", "b.png": "B", "c.txt": "C"})
			before := snapshot(t, root)
			fs := &faultFS{FS: fsops.NewRealFS(), failAt: failAt}
			moves := []planner.Move{
				{Source: filepath.Join(root, "a.png"), Destination: filepath.Join(root, "Images", "a.png")},
				{Source: filepath.Join(root, "b.png"), Destination: filepath.Join(root, "a.png")},
				{Source: filepath.Join(root, "c.txt"), Destination: filepath.Join(root, "Documents", "c.txt")},
			}

			_, err := NewExecutor(fs).Apply(context.Background(), moves)

			require.Error(t, err)
			assert.ErrorIs(t, err, errInjected)
			var execErr *ExecutionError
			require.ErrorAs(t, err, &execErr)
			assert.True(t, execErr.RolledBack())
			assert.Equal(t, before, snapshot(t, root))
		})
	}
}

func TestApply_RollbackRemovesPartialDirectories(t *testing.T) {
	root := setupDir(t, map[string]string{"a.png": "A"})
	before := snapshot(t, root)
	fs := &partialMkdirFS{FS: fsops.NewRealFS(), first: filepath.Join(root, "Images")}

	_, err := NewExecutor(fs).Apply(context.Background(), []planner.Move{
		{Source: filepath.Join(root, "a.png"), Destination: filepath.Join(root, "Images", "raw", "a.png")},
	})

	require.ErrorIs(t, err, errInjected)
	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, PhaseMkdir, execErr.Phase)
	assert.True(t, execErr.RolledBack())
	assert.NoDirExists(t, filepath.Join(root, "Images"))
	assert.Equal(t, before, snapshot(t, root))
}

func TestApply_DestinationAppearedMidway(t *testing.T) {
	root := setupDir(t, map[string]string{"a.png": "A", "Images/a.png": "OLD"})
	before := snapshot(t, root)

	_, err := NewExecutor(fsops.NewRealFS()).Apply(context.Background(), []planner.Move{
		{Source: filepath.Join(root, "a.png"), Destination: filepath.Join(root, "Images", "a.png")},
	})

	require.ErrorIs(t, err, ErrDestinationExists)
	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, PhaseLand, execErr.Phase)
	assert.Equal(t, before, snapshot(t, root))
}

func TestApply_MissingSource(t *testing.T) {
	root := setupDir(t, map[string]string{"a.png": "A"})
	before := snapshot(t, root)

	_, err := NewExecutor(fsops.NewRealFS()).Apply(context.Background(), []planner.Move{
		{Source: filepath.Join(root, "a.png"), Destination: filepath.Join(root, "x.png")},
		{Source: filepath.Join(root, "gone.png"), Destination: filepath.Join(root, "y.png")},
	})

	require.ErrorIs(t, err, ErrMissingSource)
	assert.Equal(t, before, snapshot(t, root))
}

func TestApply_EmptyBatch(t *testing.T) {
	_, err := NewExecutor(fsops.NewRealFS()).Apply(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestApply_CancelledBeforeStart(t *testing.T) {
	root := setupDir(t, map[string]string{"a.png": "A"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExecutor(fsops.NewRealFS()).Apply(ctx, []planner.Move{
		{Source: filepath.Join(root, "a.png"), Destination: filepath.Join(root, "b.png")},
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, map[string]string{"a.png": "A"}, snapshot(t, root))
}

func TestApply_StagingTokenCollision(t *testing.T) {
	root := setupDir(t, map[string]string{"a.png": "A", fsops.StagingPrefix + "fixed__a.png": "X"})
	tokens := []string{"fixed", "fresh"}
	exec := NewExecutor(fsops.NewRealFS()).WithTokenSource(func() string {
		tok := tokens[0]
		if len(tokens) > 1 {
			tokens = tokens[1:]
		}
		return tok
	})

	_, err := exec.Apply(context.Background(), []planner.Move{
		{Source: filepath.Join(root, "a.png"), Destination: filepath.Join(root, "b.png")},
	})

	require.NoError(t, err)
	assert.Equal(t, "A", readFile(t, filepath.Join(root, "b.png")))
	assert.Equal(t, "X", readFile(t, filepath.Join(root, fsops.StagingPrefix+"fixed__a.png")))
}

func TestApply_NoStagingLeftovers(t *testing.T) {
	root := setupDir(t, map[string]string{"a.png": "A", "b.png": "B"})

	_, err := NewExecutor(fsops.NewRealFS()).Apply(context.Background(), []planner.Move{
		{Source: filepath.Join(root, "a.png"), Destination: filepath.Join(root, "b.png")},
		{Source: filepath.Join(root, "b.png"), Destination: filepath.Join(root, "a.png")},
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	assert.Equal(t, []string{"a.png", "b.png"}, names)
}

func TestExecutionError_Message(t *testing.T) {
	err := &ExecutionError{
		Phase: PhaseLand,
		Move:  planner.Move{Source: "/d/a", Destination: "/d/b"},
		Err:   errInjected,
	}
	assert.Equal(t, "land /d/a -> /d/b: injected failure (rolled back)", err.Error())

	err.RollbackErrs = []error{errors.New("restore /d/b: busy")}
	assert.Contains(t, err.Error(), "rollback incomplete: restore /d/b: busy")
	assert.False(t, err.RolledBack())
}
