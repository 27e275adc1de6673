package toolbar

import tea "github.com/charmbracelet/bubbletea"

// Unit produces one toolbar element, or fails.
type Unit interface {
	Render() (string, error)
}

// UnitFunc adapts a plain function to a Unit.
type UnitFunc func() (string, error)

// Render calls f.
func (f UnitFunc) Render() (string, error) { return f() }

// Static is a host element that always renders the same text.
type Static string

// Render returns the text unchanged.
func (s Static) Render() (string, error) { return string(s), nil }

// Activator is implemented by units that react to being clicked.
type Activator interface {
	Activate() tea.Cmd
}
