package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goblintools/goblin/internal/fsops"
	"github.com/goblintools/goblin/internal/naming"
)

func TestLoadSettings_MissingFile(t *testing.T) {
	settings, err := LoadSettings(fsops.NewRealFS(), filepath.Join(t.TempDir(), "config.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestLoadSettings_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `rename:
  base: game_asset
  pad_width: 4
case_insensitive: false
journal:
  verify_checksums: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	settings, err := LoadSettings(fsops.NewRealFS(), path)

	require.NoError(t, err)
	assert.Equal(t, "game_asset", settings.Rename.Base)
	assert.Equal(t, 4, settings.Rename.PadWidth)
	assert.Equal(t, 1, settings.Rename.StartIndex)
	assert.Equal(t, "_", settings.Rename.Separator)
	assert.True(t, settings.Rename.Sanitize)
	assert.False(t, settings.CaseInsensitive)
	assert.True(t, settings.IncludeOptionalCategories)
	assert.True(t, settings.Journal.Enabled)
	assert.False(t, settings.Journal.VerifyChecksums)
}

func TestLoadSettings_NormalizesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rename:\n  base: \"  \"\n  start_index: -3\n"), 0644))

	settings, err := LoadSettings(fsops.NewRealFS(), path)

	require.NoError(t, err)
	assert.Equal(t, naming.DefaultBase, settings.Rename.Base)
	assert.Equal(t, 0, settings.Rename.StartIndex)
}

func TestLoadSettings_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rename: [not, a, map"), 0644))

	settings, err := LoadSettings(fsops.NewRealFS(), path)

	require.Error(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestSettings_SaveRoundTrip(t *testing.T) {
	fs := fsops.NewRealFS()
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	settings := DefaultSettings()
	settings.Rename.Base = "sprite"
	settings.Rename.Separator = "-"
	settings.IncludeOptionalCategories = false

	require.NoError(t, settings.Save(fs, path))
	loaded, err := LoadSettings(fs, path)

	require.NoError(t, err)
	assert.Equal(t, settings, loaded)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "base: sprite")
	assert.Contains(t, string(data), "include_optional_categories: false")
}
