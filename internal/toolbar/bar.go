package toolbar

// Bar is the integration point between the host's header and the registry.
// It holds no state of its own beyond the registry reference.
type Bar struct {
	registry *Registry
}

// NewBar returns a Bar reading from registry.
func NewBar(registry *Registry) Bar {
	return Bar{registry: registry}
}

// Registry returns the registry the bar reads from.
func (b Bar) Registry() *Registry {
	return b.registry
}

// Render merges the current contributions into the host's children.
// The merge is redone on every call so registrations made since the last
// render are always visible.
func (b Bar) Render(children []Unit) []Unit {
	if b.registry == nil {
		return Merge(children, nil)
	}
	return merge(children, b.registry.Snapshot(), b.registry)
}
