package toolbar

import (
	"errors"
	"slices"

	"github.com/zjrosen/ledge/internal/log"
)

// ErrNilUnit is returned when a contribution has no rendering unit.
var ErrNilUnit = errors.New("toolbar: contribution unit is nil")

// Contribution describes one element a plugin adds to the toolbar.
type Contribution struct {
	// Unit renders the element. Required.
	Unit Unit

	// Position is the insertion index, resolved against the sequence as it
	// stands when this contribution is merged. Negative values count back
	// from the end. Nil appends.
	Position *int

	// Isolation configures the fallback rendered when Unit fails.
	// Nil renders nothing on failure.
	Isolation *IsolationConfig
}

// At returns a pointer to p, for use as Contribution.Position.
func At(p int) *int {
	return &p
}

// Entry is one registered contribution, as returned by Snapshot.
type Entry struct {
	ID           string
	Contribution Contribution
}

// Registry maps contribution identifiers to contributions, iterated in the
// order identifiers were first registered.
//
// A Registry is created empty at startup and handed to the toolbar and to
// every plugin's Start/Stop hooks. It must only be used from the update loop.
type Registry struct {
	order   []string
	entries map[string]Contribution

	// lastFailure holds the last logged render error per id. It is cleared
	// when the id renders successfully or its contribution changes.
	lastFailure map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:     make(map[string]Contribution),
		lastFailure: make(map[string]string),
	}
}

// Register inserts or replaces the contribution for id. Replacing keeps the
// identifier's original slot in the iteration order.
func (r *Registry) Register(id string, c Contribution) error {
	if c.Unit == nil {
		return ErrNilUnit
	}
	if _, exists := r.entries[id]; !exists {
		r.order = append(r.order, id)
		log.Debug(log.CatToolbar, "Registered contribution", "id", id, "position", formatPosition(c.Position))
	} else {
		log.Debug(log.CatToolbar, "Replaced contribution", "id", id, "position", formatPosition(c.Position))
	}
	r.entries[id] = c
	delete(r.lastFailure, id)
	return nil
}

// Unregister removes the contribution for id. Unknown ids are ignored.
func (r *Registry) Unregister(id string) {
	if _, exists := r.entries[id]; !exists {
		return
	}
	delete(r.entries, id)
	delete(r.lastFailure, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	log.Debug(log.CatToolbar, "Unregistered contribution", "id", id)
}

// Snapshot returns the current entries in registration order. A new slice is
// built on every call.
func (r *Registry) Snapshot() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, Entry{ID: id, Contribution: r.entries[id]})
	}
	return out
}

// Get returns the contribution registered under id.
func (r *Registry) Get(id string) (Contribution, bool) {
	c, ok := r.entries[id]
	return c, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.entries[id]
	return ok
}

// Len returns the number of registered contributions.
func (r *Registry) Len() int {
	return len(r.order)
}

// IDs returns the registered identifiers in registration order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.order)
}

// noteFailure records msg as the latest failure of id and reports whether
// it differs from the one recorded before.
func (r *Registry) noteFailure(id, msg string) bool {
	if prev, ok := r.lastFailure[id]; ok && prev == msg {
		return false
	}
	if r.lastFailure == nil {
		r.lastFailure = make(map[string]string)
	}
	r.lastFailure[id] = msg
	return true
}

func (r *Registry) clearFailure(id string) {
	delete(r.lastFailure, id)
}

func formatPosition(p *int) any {
	if p == nil {
		return "append"
	}
	return *p
}
