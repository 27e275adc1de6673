package cmd

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/zjrosen/ledge/internal/config"
	"github.com/zjrosen/ledge/internal/flags"
	"github.com/zjrosen/ledge/internal/log"
	"github.com/zjrosen/ledge/internal/plugins"
	"github.com/zjrosen/ledge/internal/plugins/broken"
	"github.com/zjrosen/ledge/internal/plugins/clock"
	"github.com/zjrosen/ledge/internal/plugins/playlist"
	"github.com/zjrosen/ledge/internal/system"
	"github.com/zjrosen/ledge/internal/toolbar"
	"github.com/zjrosen/ledge/internal/ui/styles"
)

// buildPlugins adds the built-in plugins to a manager for reg. channel
// reports the selected channel to the playlist button.
func buildPlugins(
	c config.Config,
	ff *flags.Registry,
	reg *toolbar.Registry,
	resolver *playlist.Resolver,
	channel func() string,
	opts ...playlist.Option,
) (*plugins.Manager, *playlist.Plugin, error) {
	manager := plugins.NewManager(reg, c)
	pl := playlist.New(resolver, channel, opts...)

	all := []plugins.Plugin{
		pl,
		clock.New(system.RealClock{}, c.UI.ShowClock),
	}
	if ff.Enabled(flags.FlagBrokenContributor) {
		var once sync.Once
		all = append(all, broken.New(func(id string, err error) {
			once.Do(func() {
				log.Warn(log.CatPlugin, "Contributor failed, later failures are not reported", "id", id, "error", err)
			})
		}))
	}

	for _, p := range all {
		if err := manager.Add(p); err != nil {
			return nil, nil, err
		}
	}
	return manager, pl, nil
}

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List toolbar plugins",
	Long: `List the built-in toolbar plugins and whether the config enables them.

Examples:
  ledge plugins
  ledge plugins disable YoutubePlaylistify
  ledge plugins enable clock`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		manager, _, err := buildPlugins(cfg, flags.New(cfg.Flags), toolbar.NewRegistry(), nil, func() string { return "" })
		if err != nil {
			return err
		}
		return writePluginTable(cmd.OutOrStdout(), manager.Plugins())
	},
}

func pluginToggleCmd(use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <name>",
		Short: strings.ToUpper(use[:1]) + use[1:] + " a toolbar plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, _, err := buildPlugins(cfg, flags.New(cfg.Flags), toolbar.NewRegistry(), nil, func() string { return "" })
			if err != nil {
				return err
			}
			name, err := canonicalPlugin(manager.Plugins(), args[0])
			if err != nil {
				return err
			}
			if err := config.SetPluginEnabled(configPath, name, enabled); err != nil {
				return err
			}
			state := "enabled"
			if !enabled {
				state = "disabled"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s in %s\n", name, state, configPath)
			return err
		},
	}
}

func init() {
	pluginsCmd.AddCommand(pluginToggleCmd("enable", true), pluginToggleCmd("disable", false))
	rootCmd.AddCommand(pluginsCmd)
}

// canonicalPlugin matches name case-insensitively against the known plugins.
func canonicalPlugin(infos []plugins.Info, name string) (string, error) {
	for _, info := range infos {
		if strings.EqualFold(info.Name, name) {
			return info.Name, nil
		}
	}
	return "", fmt.Errorf("%w: %s", plugins.ErrUnknownPlugin, name)
}

func writePluginTable(w io.Writer, infos []plugins.Info) error {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)).
		Headers("NAME", "ENABLED", "DESCRIPTION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, info := range infos {
		enabled := "no"
		if info.Enabled {
			enabled = "yes"
		}
		t.Row(info.Name, enabled, info.Description)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
