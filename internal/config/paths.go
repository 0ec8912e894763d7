// Package config manages goblin configuration and filesystem paths.
//
// The default root is ~/.goblin/ containing journals/ (one undo journal per
// reorganized directory) and config.yaml (user settings).
package config

import (
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// RootEnv overrides the data directory.
const RootEnv = "GOBLIN_ROOT"

// Paths contains all the filesystem paths used by goblin.
type Paths struct {
	// Root is the base directory for all goblin data (default: ~/.goblin)
	Root string

	// Journals is the directory containing undo journals
	Journals string

	// Config is the path to the settings file
	Config string
}

// DefaultPaths returns the default paths for goblin.
// Paths can be overridden with environment variables:
// - GOBLIN_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv(RootEnv)
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".goblin")
	}
	return PathsAt(root), nil
}

// PathsAt lays out the goblin paths under root.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:     root,
		Journals: filepath.Join(root, "journals"),
		Config:   filepath.Join(root, "config.yaml"),
	}
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Root, p.Journals} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
