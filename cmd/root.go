package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/ledge/internal/app"
	"github.com/zjrosen/ledge/internal/config"
	"github.com/zjrosen/ledge/internal/flags"
	"github.com/zjrosen/ledge/internal/log"
	"github.com/zjrosen/ledge/internal/plugins/playlist"
	"github.com/zjrosen/ledge/internal/store"
	"github.com/zjrosen/ledge/internal/system"
	"github.com/zjrosen/ledge/internal/toolbar"
	"github.com/zjrosen/ledge/internal/tracing"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, otherwise
	// the OSC 11 reply can land in the input stream.
	_ = lipgloss.HasDarkBackground()
}

var (
	version    = "dev"
	cfgFile    string
	configPath string
	debugFlag  bool
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:     "ledge",
	Short:   "A terminal reader for chat channels",
	Long:    `ledge shows the channels and messages of a local message store, with a toolbar that plugins can add buttons to.`,
	Version: version,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		var err error
		cfg, configPath, err = loadConfig(viper.GetViper(), cfgFile)
		if err != nil {
			return err
		}
		return config.Validate(cfg)
	},
	RunE: runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/ledge/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log and enable the log overlay (ctrl+x)")
	rootCmd.PersistentFlags().String("db", "", "path to the message database")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable reloading messages when the database changes")
	rootCmd.PersistentFlags().Bool("no-color", false, "render without colors")

	_ = viper.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db"))
}

// userConfigPath is where the default config is written when none is found.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".ledge", "config.yaml")
	}
	return filepath.Join(home, ".config", "ledge", "config.yaml")
}

// loadConfig reads configuration into v and returns it with the path of the
// file in use. Lookup order: explicit file, .ledge/config.yaml in the working
// directory, then ~/.config/ledge/config.yaml, which is created with defaults
// when nothing is found.
func loadConfig(v *viper.Viper, explicit string) (config.Config, string, error) {
	defaults := config.Defaults()
	v.SetDefault("db_path", defaults.DBPath)
	v.SetDefault("auto_refresh", defaults.AutoRefresh)
	v.SetDefault("ui.show_clock", defaults.UI.ShowClock)
	v.SetDefault("ui.separator", defaults.UI.Separator)
	v.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	path := explicit
	if path == "" {
		local := filepath.Join(".ledge", "config.yaml")
		if _, err := os.Stat(local); err == nil {
			path = local
		} else {
			path = userConfigPath()
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				if err := config.WriteDefaultConfig(path); err != nil {
					// Run on defaults; toggles will try to create the file again.
					log.Warn(log.CatConfig, "Could not write default config", "path", path, "error", err)
				}
			}
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if explicit != "" || !errors.Is(err, os.ErrNotExist) {
			return config.Config{}, path, fmt.Errorf("reading config %s: %w", path, err)
		}
		log.Debug(log.CatConfig, "No config file, using defaults", "path", path)
	}

	c := defaults
	if err := v.Unmarshal(&c); err != nil {
		return config.Config{}, path, fmt.Errorf("decoding config: %w", err)
	}
	log.Debug(log.CatConfig, "Loaded config", "path", path)
	return c, path, nil
}

// initLogging starts the debug log when --debug or LEDGE_DEBUG is set.
// LEDGE_LOG picks the file and LEDGE_LOG_LEVEL the minimum level.
// The returned cleanup is never nil.
func initLogging(prefix string) (bool, func(), error) {
	if !debugFlag && os.Getenv("LEDGE_DEBUG") == "" {
		return false, func() {}, nil
	}
	logPath := os.Getenv("LEDGE_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return false, func() {}, fmt.Errorf("initializing logging: %w", err)
	}
	if name := os.Getenv("LEDGE_LOG_LEVEL"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			cleanup()
			return false, func() {}, fmt.Errorf("LEDGE_LOG_LEVEL: %w", err)
		}
		log.SetMinLevel(level)
	}
	log.Info(log.CatConfig, "ledge starting", "version", version, "logPath", logPath)
	return true, cleanup, nil
}

func runApp(cmd *cobra.Command, _ []string) error {
	debug, cleanup, err := initLogging("ledge")
	if err != nil {
		return err
	}
	defer cleanup()

	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	ff := flags.New(cfg.Flags)
	tracingCfg := cfg.Tracing
	if ff.Enabled(flags.FlagToolbarTracing) {
		tracingCfg.Enabled = true
	}
	provider, err := tracing.NewProvider(tracingCfg)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	zone.NewGlobal()

	reg := toolbar.NewRegistry()
	sel := &app.Selection{}
	resolver := playlist.NewResolver(db)
	manager, pl, err := buildPlugins(cfg, ff, reg, resolver, sel.ChannelID)
	if err != nil {
		return err
	}
	manager.SetPersist(func(name string, enabled bool) error {
		return config.SetPluginEnabled(configPath, name, enabled)
	})
	if err := manager.Start(); err != nil {
		// Plugins that started still show; the rest are in the log.
		log.Warn(log.CatPlugin, "Some plugins failed to start", "error", err)
	}
	defer manager.Close()

	model := app.New(app.Services{
		Store:     db,
		Config:    cfg,
		Registry:  reg,
		Plugins:   manager,
		Playlist:  pl,
		Resolver:  resolver,
		Selection: sel,
		Tracer:    provider.Tracer(),
		Clock:     system.RealClock{},
	}, debug)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
