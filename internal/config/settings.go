package config

import (
	"os"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/goblintools/goblin/internal/fsops"
	"github.com/goblintools/goblin/internal/planner"
)

// JournalSettings controls the persisted undo journal.
type JournalSettings struct {
	// Enabled records a journal after every applied batch
	Enabled bool `json:"enabled" yaml:"enabled"`

	// VerifyChecksums refuses to undo files modified since the batch
	VerifyChecksums bool `json:"verify_checksums" yaml:"verify_checksums"`
}

// Settings are the user preferences stored in config.yaml.
type Settings struct {
	Rename                    planner.RenameOptions `json:"rename" yaml:"rename"`
	IncludeOptionalCategories bool                  `json:"include_optional_categories" yaml:"include_optional_categories"`
	CaseInsensitive           bool                  `json:"case_insensitive" yaml:"case_insensitive"`
	Journal                   JournalSettings       `json:"journal" yaml:"journal"`
}

// DefaultSettings returns the settings used when no config file exists.
func DefaultSettings() Settings {
	return Settings{
		Rename:                    planner.DefaultRenameOptions(),
		IncludeOptionalCategories: true,
		CaseInsensitive:           true,
		Journal: JournalSettings{
			Enabled:         true,
			VerifyChecksums: true,
		},
	}
}

// LoadSettings reads settings from path. Keys missing from the file keep their
// defaults, and a missing file yields DefaultSettings.
func LoadSettings(fs fsops.FS, path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, errors.Errorf("failed to read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), errors.Errorf("failed to parse %s: %w", path, err)
	}
	settings.Rename.Template = settings.Rename.Normalized()
	return settings, nil
}

// Save writes the settings to path atomically.
func (s Settings) Save(fs fsops.FS, path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return errors.Errorf("failed to encode settings: %w", err)
	}
	if err := fs.AtomicWrite(path, data, 0644); err != nil {
		return errors.Errorf("failed to write settings: %w", err)
	}
	return nil
}
