package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/ledge/internal/config"
	"github.com/zjrosen/ledge/internal/flags"
	"github.com/zjrosen/ledge/internal/plugins"
	"github.com/zjrosen/ledge/internal/plugins/broken"
	"github.com/zjrosen/ledge/internal/plugins/clock"
	"github.com/zjrosen/ledge/internal/plugins/playlist"
	"github.com/zjrosen/ledge/internal/store"
	"github.com/zjrosen/ledge/internal/system"
	"github.com/zjrosen/ledge/internal/toolbar"
)

func TestLoadConfig_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path: /tmp/ledge-test.db
ui:
  separator: " | "
plugins:
  YoutubePlaylistify:
    enabled: false
    position: 2
flags:
  broken-contributor: true
`), 0o600))

	c, used, err := loadConfig(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, path, used)
	require.Equal(t, "/tmp/ledge-test.db", c.DBPath)
	require.Equal(t, " | ", c.UI.Separator)
	require.True(t, c.UI.ShowClock, "unset keys keep their defaults")
	require.Equal(t, "file", c.Tracing.Exporter)

	pc := c.Plugin(playlist.Name)
	require.False(t, pc.IsEnabled(true))
	require.NotNil(t, pc.Position)
	require.Equal(t, 2, *pc.Position)
	require.True(t, flags.New(c.Flags).Enabled(flags.FlagBrokenContributor))
}

func TestLoadConfig_MissingExplicitFileFails(t *testing.T) {
	_, _, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_WritesDefaultWhenNoneFound(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	c, used, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".config", "ledge", "config.yaml"), used)
	require.FileExists(t, used)
	require.True(t, c.AutoRefresh)
	require.True(t, c.Plugin(playlist.Name).IsEnabled(false), "default file enables the playlist")
}

func TestLoadConfig_PrefersLocalFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll(".ledge", 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(".ledge", "config.yaml"), []byte("auto_refresh: false\n"), 0o600))

	c, used, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(".ledge", "config.yaml"), used)
	require.False(t, c.AutoRefresh)
}

func pluginNames(infos []plugins.Info) []string {
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names
}

func TestBuildPlugins(t *testing.T) {
	c := config.Defaults()
	noChannel := func() string { return "" }

	manager, pl, err := buildPlugins(c, flags.New(nil), toolbar.NewRegistry(), nil, noChannel)
	require.NoError(t, err)
	require.NotNil(t, pl)
	require.Equal(t, []string{playlist.Name, clock.Name}, pluginNames(manager.Plugins()))

	manager, _, err = buildPlugins(c, flags.New(map[string]bool{flags.FlagBrokenContributor: true}), toolbar.NewRegistry(), nil, noChannel)
	require.NoError(t, err)
	require.Equal(t, []string{playlist.Name, clock.Name, broken.Name}, pluginNames(manager.Plugins()))
}

func TestBuildPlugins_StartRespectsConfig(t *testing.T) {
	c := config.Defaults()
	c.UI.ShowClock = false
	off := false
	c.Plugins = map[string]config.PluginConfig{"youtubeplaylistify": {Enabled: &off}}

	reg := toolbar.NewRegistry()
	manager, _, err := buildPlugins(c, flags.New(nil), reg, nil, func() string { return "" })
	require.NoError(t, err)
	require.NoError(t, manager.Start())
	require.Equal(t, 0, reg.Len())
}

func TestCanonicalPlugin(t *testing.T) {
	infos := []plugins.Info{{Name: playlist.Name}, {Name: clock.Name}}

	name, err := canonicalPlugin(infos, "youtubeplaylistify")
	require.NoError(t, err)
	require.Equal(t, playlist.Name, name)

	_, err = canonicalPlugin(infos, "weather")
	require.ErrorIs(t, err, plugins.ErrUnknownPlugin)
}

func TestWritePluginTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePluginTable(&buf, []plugins.Info{
		{Name: playlist.Name, Description: playlist.Description, Enabled: true},
		{Name: clock.Name, Description: "Show the current time in the toolbar"},
	}))
	out := buf.String()
	require.Contains(t, out, "NAME")
	require.Contains(t, out, playlist.Name)
	require.Regexp(t, `clock\s+│\s+no`, out)
}

const importYAML = `
channels:
  - name: music
    topic: things worth hearing
    messages:
      - author: ana
        content: new single
        at: 2025-03-01T18:00:00Z
        embeds:
          - url: https://www.youtube.com/watch?v=aaa
      - author: bo
        at: 2025-03-01T18:05:00Z
        embeds:
          - url: https://www.youtube.com/watch?v=bbb&t=10s
`

func TestImportThenPlaylist(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "ledge.db")
	file := filepath.Join(dir, "import.yaml")
	require.NoError(t, os.WriteFile(file, []byte(importYAML), 0o600))

	var out bytes.Buffer
	require.NoError(t, runImport(context.Background(), dbPath, file, &out))
	require.Equal(t, "Imported 2 messages (1 new channels)\n", out.String())

	db, err := store.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	out.Reset()
	opener := &system.RecordingOpener{}
	clip := &system.MemoryClipboard{}
	require.NoError(t, runPlaylist(context.Background(), db, "music", &out, opener, clip))

	want := "http://www.youtube.com/watch_videos?video_ids=aaa,bbb"
	require.Equal(t, want+"\n", out.String())
	require.Equal(t, []string{want}, opener.URLs)
	require.Equal(t, want, clip.Text)

	err = runPlaylist(context.Background(), db, "nowhere", &out, nil, nil)
	require.ErrorIs(t, err, store.ErrChannelNotFound)
}

func TestImport_MissingFile(t *testing.T) {
	err := runImport(context.Background(), filepath.Join(t.TempDir(), "ledge.db"), "missing.yaml", &bytes.Buffer{})
	require.Error(t, err)
}
