package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.True(t, cfg.AutoRefresh)
	require.True(t, cfg.UI.ShowClock)
	require.Equal(t, " │ ", cfg.UI.Separator)
	require.Equal(t, "dark", cfg.UI.MarkdownStyle)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.Equal(t, 1.0, cfg.Tracing.SampleRate)
	require.NoError(t, Validate(cfg))
}

func TestPluginConfig_IsEnabled(t *testing.T) {
	yes, no := true, false

	require.True(t, PluginConfig{}.IsEnabled(true))
	require.False(t, PluginConfig{}.IsEnabled(false))
	require.True(t, PluginConfig{Enabled: &yes}.IsEnabled(false))
	require.False(t, PluginConfig{Enabled: &no}.IsEnabled(true))
}

func TestConfig_Plugin_MissingReturnsZero(t *testing.T) {
	var cfg Config

	require.Equal(t, PluginConfig{}, cfg.Plugin("clock"))
}

func TestValidate_MarkdownStyle(t *testing.T) {
	cfg := Defaults()
	cfg.UI.MarkdownStyle = "neon"

	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "ui.markdown_style")
}

func TestValidateTracing(t *testing.T) {
	tests := []struct {
		name    string
		tracing TracingConfig
		wantErr string
	}{
		{"defaults", Defaults().Tracing, ""},
		{"zero value", TracingConfig{}, ""},
		{"sample rate too high", TracingConfig{SampleRate: 1.5}, "sample_rate"},
		{"sample rate negative", TracingConfig{SampleRate: -0.1}, "sample_rate"},
		{"unknown exporter", TracingConfig{Exporter: "zipkin"}, "tracing.exporter"},
		{"otlp without endpoint", TracingConfig{Enabled: true, Exporter: "otlp"}, "otlp_endpoint"},
		{"otlp disabled without endpoint", TracingConfig{Exporter: "otlp"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTracing(tt.tracing)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteDefaultConfig_CreatesParseableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	require.True(t, cfg.AutoRefresh)
	require.True(t, cfg.UI.ShowClock)
	require.True(t, cfg.Plugin("YoutubePlaylistify").IsEnabled(false))
}

func TestUnmarshal_PluginOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
plugins:
  clock:
    enabled: false
    position: 2
flags:
  broken-contributor: true
`), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	clock := cfg.Plugin("clock")
	require.False(t, clock.IsEnabled(true))
	require.NotNil(t, clock.Position)
	require.Equal(t, 2, *clock.Position)
	require.True(t, cfg.Flags["broken-contributor"])
}
