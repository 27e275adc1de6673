// Package broken is a contributor that always fails to render. It is gated
// behind the broken-contributor flag and shows what a failing plugin looks
// like in the header.
package broken

import (
	"github.com/zjrosen/ledge/internal/plugins"
	"github.com/zjrosen/ledge/internal/toolbar"
)

// Name is the plugin and contribution id.
const Name = "broken"

// Plugin panics on every render.
type Plugin struct {
	plugins.Base
}

// New creates the plugin. onError, when set, is told about each failure.
func New(onError func(id string, err error)) *Plugin {
	p := &Plugin{}
	p.Base = plugins.Base{
		ID:   Name,
		Desc: "Always fails to render (feature flag broken-contributor)",
		Contribution: toolbar.Contribution{
			Unit: p,
			Isolation: &toolbar.IsolationConfig{
				Message: "broken plugin",
				OnError: onError,
			},
		},
	}
	return p
}

// Render implements toolbar.Unit.
func (p *Plugin) Render() (string, error) {
	panic("broken contributor rendered")
}
