package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultPaths(t *testing.T) {
	t.Run("returns paths based on home directory", func(t *testing.T) {
		t.Setenv(RootEnv, "")

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if filepath.Base(paths.Root) != ".goblin" {
			t.Errorf("Root should end with .goblin, got: %s", paths.Root)
		}
		if paths.Journals != filepath.Join(paths.Root, "journals") {
			t.Errorf("Journals path incorrect: got %s", paths.Journals)
		}
		if paths.Config != filepath.Join(paths.Root, "config.yaml") {
			t.Errorf("Config path incorrect: got %s", paths.Config)
		}
	})

	t.Run("respects GOBLIN_ROOT environment variable", func(t *testing.T) {
		customRoot := "/custom/goblin/path"
		t.Setenv(RootEnv, customRoot)

		paths, err := DefaultPaths()
		if err != nil {
			t.Fatalf("DefaultPaths failed: %v", err)
		}

		if paths.Root != customRoot {
			t.Errorf("Expected root %s, got %s", customRoot, paths.Root)
		}
		if paths.Journals != filepath.Join(customRoot, "journals") {
			t.Errorf("Journals should use custom root, got %s", paths.Journals)
		}
	})
}

func TestEnsureDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", ".goblin")
	paths := PathsAt(root)

	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	// Idempotent
	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed on second call: %v", err)
	}
}
