// Package config provides configuration types and defaults for ledge.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zjrosen/ledge/internal/log"
)

// Config holds all configuration options for ledge.
type Config struct {
	DBPath      string                  `mapstructure:"db_path"`
	AutoRefresh bool                    `mapstructure:"auto_refresh"`
	UI          UIConfig                `mapstructure:"ui"`
	Plugins     map[string]PluginConfig `mapstructure:"plugins"`
	Flags       map[string]bool         `mapstructure:"flags"`
	Tracing     TracingConfig           `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowClock     bool   `mapstructure:"show_clock"`
	Separator     string `mapstructure:"separator"`      // Text between toolbar elements
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// PluginConfig controls one toolbar contributor.
type PluginConfig struct {
	Enabled  *bool `mapstructure:"enabled"`  // nil = plugin default
	Position *int  `mapstructure:"position"` // nil = plugin default
}

// IsEnabled returns whether the plugin is enabled, falling back to def.
func (p PluginConfig) IsEnabled(def bool) bool {
	if p.Enabled == nil {
		return def
	}
	return *p.Enabled
}

// TracingConfig holds distributed tracing configuration for toolbar rendering.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/ledge/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Plugin returns the configuration for the named plugin. Names match
// case-insensitively since viper lowercases map keys.
func (c Config) Plugin(name string) PluginConfig {
	if p, ok := c.Plugins[name]; ok {
		return p
	}
	for k, p := range c.Plugins {
		if strings.EqualFold(k, name) {
			return p
		}
	}
	return PluginConfig{}
}

// DefaultDBPath returns the default message database location.
// Returns ~/.ledge/ledge.db or a relative path if home dir is unavailable.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".ledge", "ledge.db")
	}
	return filepath.Join(home, ".ledge", "ledge.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/ledge/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ledge", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		DBPath:      DefaultDBPath(),
		AutoRefresh: true,
		UI: UIConfig{
			ShowClock:     true,
			Separator:     " │ ",
			MarkdownStyle: "dark",
		},
		Plugins: map[string]PluginConfig{},
		Flags:   map[string]bool{},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the configuration for errors.
func Validate(c Config) error {
	switch c.UI.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", c.UI.MarkdownStyle)
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		return err
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate endpoint requirements when tracing is enabled
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# ledge configuration

# Path to the message database (default: ~/.ledge/ledge.db)
# db_path: /path/to/ledge.db

# Reload messages when the database changes
auto_refresh: true

# UI settings
ui:
  show_clock: true        # Show the clock contributor at the right of the toolbar
  separator: " │ "        # Text placed between toolbar elements
  # markdown_style: dark  # Message rendering style: "dark" (default) or "light"

# Toolbar contributors
# Each plugin can be disabled or moved. Positions are insertion indexes into
# the toolbar as it stands when the plugin is merged; negative values count
# back from the end.
plugins:
  YoutubePlaylistify:
    enabled: true
  # clock:
  #   position: -1

# Feature flags
# flags:
#   broken-contributor: true   # Adds a contributor that always fails

# Distributed tracing of toolbar render passes
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/ledge/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
