package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type savedPlugins struct {
	AutoRefresh *bool `yaml:"auto_refresh"`
	Plugins     map[string]struct {
		Enabled  *bool `yaml:"enabled"`
		Position *int  `yaml:"position"`
	} `yaml:"plugins"`
}

func readSaved(t *testing.T, path string) savedPlugins {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out savedPlugins
	require.NoError(t, yaml.Unmarshal(data, &out))
	return out
}

func TestSetPluginEnabled_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ledge", "config.yaml")

	require.NoError(t, SetPluginEnabled(path, "clock", false))

	saved := readSaved(t, path)
	require.NotNil(t, saved.Plugins["clock"].Enabled)
	require.False(t, *saved.Plugins["clock"].Enabled)
}

func TestSetPluginEnabled_UpdatesExistingAndKeepsComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SetPluginEnabled(path, "YoutubePlaylistify", false))

	saved := readSaved(t, path)
	require.False(t, *saved.Plugins["YoutubePlaylistify"].Enabled)
	require.NotNil(t, saved.AutoRefresh)
	require.True(t, *saved.AutoRefresh)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# Reload messages when the database changes")
}

func TestSetPluginEnabled_EmptyPluginsSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auto_refresh: false\nplugins:\n"), 0o600))

	require.NoError(t, SetPluginEnabled(path, "clock", true))

	saved := readSaved(t, path)
	require.True(t, *saved.Plugins["clock"].Enabled)
	require.False(t, *saved.AutoRefresh)
}

func TestSetPluginPosition_KeepsEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, SetPluginEnabled(path, "clock", true))

	require.NoError(t, SetPluginPosition(path, "clock", -2))

	saved := readSaved(t, path)
	require.True(t, *saved.Plugins["clock"].Enabled)
	require.Equal(t, -2, *saved.Plugins["clock"].Position)
}

func TestSetPluginEnabled_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plugins: [unclosed"), 0o600))

	err := SetPluginEnabled(path, "clock", true)

	require.Error(t, err)
	require.Contains(t, err.Error(), "parsing config")
}

func TestSetPluginEnabled_TopLevelNotMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o600))

	err := SetPluginEnabled(path, "clock", true)

	require.Error(t, err)
	require.Contains(t, err.Error(), "top level must be a mapping")
}

func TestSetPluginEnabled_MatchesNameIgnoringCase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plugins:\n  youtubeplaylistify:\n    position: 2\n"), 0o600))

	require.NoError(t, SetPluginEnabled(path, "YoutubePlaylistify", false))

	saved := readSaved(t, path)
	require.Len(t, saved.Plugins, 1)
	require.False(t, *saved.Plugins["youtubeplaylistify"].Enabled)
	require.Equal(t, 2, *saved.Plugins["youtubeplaylistify"].Position)
}
