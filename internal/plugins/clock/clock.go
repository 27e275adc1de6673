// Package clock shows the current time at the right end of the toolbar.
package clock

import (
	"github.com/zjrosen/ledge/internal/plugins"
	"github.com/zjrosen/ledge/internal/system"
	"github.com/zjrosen/ledge/internal/toolbar"
	"github.com/zjrosen/ledge/internal/ui/styles"
)

// Name is the plugin and contribution id.
const Name = "clock"

// Plugin renders HH:MM.
type Plugin struct {
	plugins.Base
	clock   system.Clock
	enabled bool
}

// New creates the clock. enabled is the default when the plugins: section
// does not mention it, normally ui.show_clock.
func New(clock system.Clock, enabled bool) *Plugin {
	p := &Plugin{clock: clock, enabled: enabled}
	p.Base = plugins.Base{
		ID:   Name,
		Desc: "Show the current time in the toolbar",
		Contribution: toolbar.Contribution{
			Unit:     p,
			Position: toolbar.At(-1),
			Isolation: &toolbar.IsolationConfig{
				Message: "--:--",
			},
		},
	}
	return p
}

// DefaultEnabled implements plugins.Defaulter.
func (p *Plugin) DefaultEnabled() bool { return p.enabled }

// Render implements toolbar.Unit.
func (p *Plugin) Render() (string, error) {
	return styles.ToolbarHintStyle.Render(p.clock.Now().Format("15:04")), nil
}
