package plugins

import (
	"errors"
	"fmt"

	"github.com/zjrosen/ledge/internal/config"
	"github.com/zjrosen/ledge/internal/log"
	"github.com/zjrosen/ledge/internal/pubsub"
	"github.com/zjrosen/ledge/internal/toolbar"
)

// ErrUnknownPlugin is returned for a name no plugin was added under.
var ErrUnknownPlugin = errors.New("plugins: unknown plugin")

// Info describes a plugin for listings.
type Info struct {
	Name        string
	Description string
	Enabled     bool
	Running     bool
}

// PersistFunc records a toggle so it survives a restart.
type PersistFunc func(name string, enabled bool) error

// Manager runs plugins against one toolbar registry.
// Like the registry, it must only be used from the update loop.
type Manager struct {
	registry *toolbar.Registry
	cfg      config.Config
	persist  PersistFunc
	events   *pubsub.Broker[string]

	order   []Plugin
	byName  map[string]Plugin
	running map[string]bool
}

// NewManager creates a manager for registry using the plugins: section of cfg.
func NewManager(registry *toolbar.Registry, cfg config.Config) *Manager {
	return &Manager{
		registry: registry,
		cfg:      cfg,
		events:   pubsub.NewBroker[string](),
		byName:   make(map[string]Plugin),
		running:  make(map[string]bool),
	}
}

// SetPersist sets the function toggles are saved with.
func (m *Manager) SetPersist(fn PersistFunc) {
	m.persist = fn
}

// Events publishes RegisteredEvent and UnregisteredEvent with the plugin name.
func (m *Manager) Events() *pubsub.Broker[string] {
	return m.events
}

// Add makes p known to the manager, applying any configured position.
// Plugins start in the order they were added.
func (m *Manager) Add(p Plugin) error {
	name := p.Name()
	if _, exists := m.byName[name]; exists {
		return fmt.Errorf("plugins: %q added twice", name)
	}
	if pos, ok := p.(Positioner); ok {
		pos.SetPosition(m.cfg.Plugin(name).Position)
	}
	m.byName[name] = p
	m.order = append(m.order, p)
	return nil
}

// Start starts every enabled plugin. A plugin that fails to start is logged
// and skipped; the rest still start. The joined errors are returned.
func (m *Manager) Start() error {
	var errs []error
	for _, p := range m.order {
		if !m.configured(p) {
			log.Debug(log.CatPlugin, "Plugin disabled", "plugin", p.Name())
			continue
		}
		if err := m.start(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Stop stops every running plugin in reverse start order.
func (m *Manager) Stop() {
	for i := len(m.order) - 1; i >= 0; i-- {
		if p := m.order[i]; m.running[p.Name()] {
			m.stop(p)
		}
	}
}

// Close stops all plugins and ends event subscriptions.
func (m *Manager) Close() {
	m.Stop()
	m.events.Close()
}

// Enabled reports whether the named plugin is running.
func (m *Manager) Enabled(name string) bool {
	return m.running[name]
}

// SetEnabled starts or stops the named plugin and persists the choice.
// The toolbar reflects the change on its next render.
func (m *Manager) SetEnabled(name string, enabled bool) error {
	p, ok := m.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlugin, name)
	}

	switch {
	case enabled && !m.running[name]:
		if err := m.start(p); err != nil {
			return err
		}
	case !enabled && m.running[name]:
		m.stop(p)
	}

	if m.persist != nil {
		if err := m.persist(name, enabled); err != nil {
			log.ErrorErr(log.CatPlugin, "Failed to save plugin setting", err, "plugin", name)
			return fmt.Errorf("saving plugin setting: %w", err)
		}
	}
	return nil
}

// Toggle flips the named plugin and returns its new state.
func (m *Manager) Toggle(name string) (bool, error) {
	if _, ok := m.byName[name]; !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownPlugin, name)
	}
	enabled := !m.running[name]
	return enabled, m.SetEnabled(name, enabled)
}

// Plugins lists plugins in the order they were added.
func (m *Manager) Plugins() []Info {
	out := make([]Info, 0, len(m.order))
	for _, p := range m.order {
		out = append(out, Info{
			Name:        p.Name(),
			Description: p.Description(),
			Enabled:     m.configured(p),
			Running:     m.running[p.Name()],
		})
	}
	return out
}

func (m *Manager) configured(p Plugin) bool {
	def := true
	if d, ok := p.(Defaulter); ok {
		def = d.DefaultEnabled()
	}
	return m.cfg.Plugin(p.Name()).IsEnabled(def)
}

func (m *Manager) start(p Plugin) error {
	if err := p.Start(m.registry); err != nil {
		log.ErrorErr(log.CatPlugin, "Plugin failed to start", err, "plugin", p.Name())
		return fmt.Errorf("starting %s: %w", p.Name(), err)
	}
	m.running[p.Name()] = true
	log.Info(log.CatPlugin, "Plugin started", "plugin", p.Name())
	m.events.Publish(pubsub.RegisteredEvent, p.Name())
	return nil
}

func (m *Manager) stop(p Plugin) {
	p.Stop(m.registry)
	delete(m.running, p.Name())
	log.Info(log.CatPlugin, "Plugin stopped", "plugin", p.Name())
	m.events.Publish(pubsub.UnregisteredEvent, p.Name())
}
