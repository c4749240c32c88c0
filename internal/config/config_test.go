package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdxmph/user-manager-tui/internal/config"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadFrom_MissingFile_ReturnsDefaults(t *testing.T) {
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadFrom_OverridesDefaults(t *testing.T) {
	path := writeFile(t, `
[log]
path = "/tmp/um.log"
level = "debug"

[ui]
demo = true
`)

	cfg, err := config.LoadFrom(path)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/um.log", cfg.Log.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.UI.Demo)
	// untouched keys keep their defaults
	assert.Equal(t, "62", cfg.UI.Accent)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadFrom_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	path := writeFile(t, "[log]\npath = \"~/logs/um.log\"\n")

	cfg, err := config.LoadFrom(path)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "um.log"), cfg.Log.Path)
}

func TestLoadFrom_BadLevel(t *testing.T) {
	path := writeFile(t, "[log]\nlevel = \"loud\"\n")

	_, err := config.LoadFrom(path)

	assert.ErrorContains(t, err, "invalid log level")
}

func TestLoadFrom_BadTOML(t *testing.T) {
	path := writeFile(t, "[log\n")

	_, err := config.LoadFrom(path)

	assert.ErrorContains(t, err, "parsing config file")
}

func TestSaveTo_CreatesDirectoryAndLoadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := config.Default()
	cfg.UI.Accent = "205"
	cfg.UI.Demo = true

	require.NoError(t, cfg.SaveTo(path))

	loaded, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
