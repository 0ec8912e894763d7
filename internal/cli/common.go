package cli

import (
	"encoding/json"
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/goblintools/goblin/internal/clock"
	"github.com/goblintools/goblin/internal/config"
	"github.com/goblintools/goblin/internal/engine"
	"github.com/goblintools/goblin/internal/fsops"
	"github.com/goblintools/goblin/internal/hash"
	"github.com/goblintools/goblin/internal/state"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, error) {
	// Get default paths
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, errors.Errorf("failed to get config paths: %w", err)
	}

	// Ensure directories exist
	if err := paths.EnsureDirectories(); err != nil {
		return nil, errors.Errorf("failed to ensure directories: %w", err)
	}

	fs := fsops.NewRealFS()
	settings, err := config.LoadSettings(fs, paths.Config)
	if err != nil {
		return nil, err
	}

	// Create real implementations
	hasher := hash.NewSHA256Hasher()
	clk := clock.NewRealClock()
	journals := state.NewFileJournalStore(fs, paths.Journals)

	return engine.New(fs, hasher, clk, journals, settings), nil
}

// formatJSON formats a value as JSON.
func formatJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// formatError formats an error for display.
func formatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON writes a value as indented JSON to w.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
