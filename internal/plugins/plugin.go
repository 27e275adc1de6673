// Package plugins manages the toolbar contributors built into ledge.
//
// A plugin contributes by registering with the toolbar registry in Start and
// removing itself in Stop. The Manager decides which plugins run, applies
// per-plugin config, and records runtime toggles.
package plugins

import (
	"github.com/zjrosen/ledge/internal/toolbar"
)

// Plugin is a toolbar contributor with a start/stop lifecycle.
type Plugin interface {
	Name() string
	Description() string
	Start(reg *toolbar.Registry) error
	Stop(reg *toolbar.Registry)
}

// Defaulter is implemented by plugins that are off unless configured on.
type Defaulter interface {
	DefaultEnabled() bool
}

// Positioner is implemented by plugins whose toolbar position can be
// overridden from config.
type Positioner interface {
	SetPosition(p *int)
}

// Base implements Plugin for the common case of one contribution registered
// under the plugin's name.
type Base struct {
	ID           string
	Desc         string
	Contribution toolbar.Contribution
}

// Name implements Plugin.
func (b *Base) Name() string { return b.ID }

// Description implements Plugin.
func (b *Base) Description() string { return b.Desc }

// Start implements Plugin.
func (b *Base) Start(reg *toolbar.Registry) error {
	return reg.Register(b.ID, b.Contribution)
}

// Stop implements Plugin.
func (b *Base) Stop(reg *toolbar.Registry) {
	reg.Unregister(b.ID)
}

// SetPosition implements Positioner. A nil p keeps the plugin's default.
func (b *Base) SetPosition(p *int) {
	if p != nil {
		b.Contribution.Position = p
	}
}
