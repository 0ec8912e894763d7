package integration

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goblintools/goblin/internal/engine"
	"github.com/goblintools/goblin/internal/fsops"
	"github.com/goblintools/goblin/internal/planner"
	"github.com/goblintools/goblin/internal/state"
)

func TestSort_FullCycle(t *testing.T) {
	eng, fs, journals := setupTestEngine(t)
	ctx := testContext(t)

	fs.addFile(at("a.png"), "png")
	fs.addFile(at("b.pdf"), "pdf")
	fs.addFile(at("song.mp3"), "mp3")
	fs.addFile(at("notes"), "notes")

	plan, err := eng.BuildSortPlan(ctx, testRoot, true)
	require.NoError(t, err)
	require.Len(t, plan.Moves, 4)

	result, err := eng.ApplyPlan(ctx, &engine.ApplyRequest{Plan: plan})
	require.NoError(t, err)
	assert.Equal(t, state.ComputeJournalID(testRoot), result.JournalID)

	assert.Equal(t, []string{
		at("Audio", "song.mp3"),
		at("Documents", "b.pdf"),
		at("Images", "a.png"),
		at("Other", "notes"),
	}, fs.paths())

	journal, err := journals.Load(result.JournalID)
	require.NoError(t, err)
	assert.Equal(t, "sort", journal.Mode)
	assert.Len(t, journal.Moves, 4)
	assert.ElementsMatch(t, []string{at("Audio"), at("Documents"), at("Images"), at("Other")}, journal.CreatedDirs)

	undo, err := eng.UndoLast(ctx, &engine.UndoRequest{Root: testRoot})
	require.NoError(t, err)
	assert.Len(t, undo.RemovedDirs, 4)

	assert.Equal(t, []string{at("a.png"), at("b.pdf"), at("notes"), at("song.mp3")}, fs.paths())
	assert.False(t, fs.hasDir(at("Images")))

	_, err = journals.Load(result.JournalID)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSort_ExistingCategoryFile(t *testing.T) {
	eng, fs, _ := setupTestEngine(t)
	ctx := testContext(t)

	fs.addFile(at("a.png"), "new")
	fs.addFile(at("Images", "a.png"), "old")

	plan, err := eng.BuildSortPlan(ctx, testRoot, true)
	require.NoError(t, err)
	require.Len(t, plan.Moves, 1)
	assert.Equal(t, at("Images", "a (2).png"), plan.Moves[0].Destination)

	_, err = eng.ApplyPlan(ctx, &engine.ApplyRequest{Plan: plan})
	require.NoError(t, err)

	content, ok := fs.content(at("Images", "a.png"))
	require.True(t, ok)
	assert.Equal(t, "old", content)
	content, ok = fs.content(at("Images", "a (2).png"))
	require.True(t, ok)
	assert.Equal(t, "new", content)
}

func TestSortRename_PerCategoryCounter(t *testing.T) {
	eng, fs, _ := setupTestEngine(t)
	ctx := testContext(t)

	fs.addFile(at("b.jpg"), "b")
	fs.addFile(at("a.png"), "a")
	fs.addFile(at("doc.pdf"), "doc")

	plan, err := eng.BuildSortThenRenamePlan(ctx, testRoot, planner.DefaultRenameOptions(), true)
	require.NoError(t, err)

	_, err = eng.ApplyPlan(ctx, &engine.ApplyRequest{Plan: plan})
	require.NoError(t, err)

	assert.Equal(t, []string{
		at("Documents", "asset_001.pdf"),
		at("Images", "asset_001.png"),
		at("Images", "asset_002.jpg"),
	}, fs.paths())
	content, _ := fs.content(at("Images", "asset_001.png"))
	assert.Equal(t, "a", content)
}

func TestRename_SwapNames(t *testing.T) {
	eng, fs, _ := setupTestEngine(t)
	ctx := testContext(t)

	fs.addFile(at("asset_001.png"), "first")
	fs.addFile(at("asset_002.png"), "second")

	// Numbering follows the given order, so the two names trade places.
	entries := planner.NewEntries([]string{at("asset_002.png"), at("asset_001.png")})
	plan, err := eng.BuildRenamePlan(ctx, entries, planner.DefaultRenameOptions())
	require.NoError(t, err)
	require.Len(t, plan.Moves, 2)

	_, err = eng.ApplyPlan(ctx, &engine.ApplyRequest{Plan: plan})
	require.NoError(t, err)

	content, _ := fs.content(at("asset_001.png"))
	assert.Equal(t, "second", content)
	content, _ = fs.content(at("asset_002.png"))
	assert.Equal(t, "first", content)

	_, err = eng.UndoLast(ctx, &engine.UndoRequest{Root: testRoot})
	require.NoError(t, err)
	content, _ = fs.content(at("asset_001.png"))
	assert.Equal(t, "first", content)
}

func TestApply_RollbackOnFailure(t *testing.T) {
	eng, fs, journals := setupTestEngine(t)
	ctx := testContext(t)

	fs.addFile(at("a.png"), "a")
	fs.addFile(at("b.pdf"), "b")
	fs.addFile(at("c.mp4"), "c")

	plan, err := eng.BuildSortPlan(ctx, testRoot, true)
	require.NoError(t, err)
	fs.failRename[at("Images", "a.png")] = errors.New("disk full")

	_, err = eng.ApplyPlan(ctx, &engine.ApplyRequest{Plan: plan})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "rolled back")

	assert.Equal(t, []string{at("a.png"), at("b.pdf"), at("c.mp4")}, fs.paths())
	for _, dir := range []string{"Images", "Documents", "Videos"} {
		assert.False(t, fs.hasDir(at(dir)), dir)
	}
	_, err = journals.Load(state.ComputeJournalID(testRoot))
	assert.Error(t, err)
}

func TestApply_InvalidPlanTouchesNothing(t *testing.T) {
	eng, fs, _ := setupTestEngine(t)
	ctx := testContext(t)

	fs.addFile(at("a1.txt"), "a")
	fs.addFile(at("b1.txt"), "b")

	plan, report, err := eng.BuildFindReplacePlan(ctx, []string{at("a1.txt")}, "a", "b", true)
	require.NoError(t, err)
	assert.False(t, report.Valid)
	assert.Equal(t, 1, report.Issues.Exists)

	_, err = eng.ApplyPlan(ctx, &engine.ApplyRequest{Plan: plan})
	require.ErrorIs(t, err, engine.ErrValidation)
	assert.Zero(t, fs.renames)
}

func TestApply_NoStagingLeftovers(t *testing.T) {
	eng, fs, _ := setupTestEngine(t)
	ctx := testContext(t)

	for _, name := range []string{"a.png", "b.png", "c.png", "d.txt"} {
		fs.addFile(at(name), name)
	}
	plan, err := eng.BuildSortThenRenamePlan(ctx, testRoot, planner.DefaultRenameOptions(), true)
	require.NoError(t, err)
	_, err = eng.ApplyPlan(ctx, &engine.ApplyRequest{Plan: plan})
	require.NoError(t, err)

	for _, path := range fs.paths() {
		assert.False(t, strings.Contains(path, fsops.StagingPrefix), path)
	}
}
