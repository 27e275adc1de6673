// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// AppKeys are the bindings of the main screen.
type AppKeys struct {
	// Channels
	NextChannel key.Binding
	PrevChannel key.Binding

	// Messages
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Refresh key.Binding

	// Playlist
	OpenPlaylist   key.Binding
	CopyPlaylist   key.Binding
	TogglePlaylist key.Binding

	// General
	Logs key.Binding
	Help key.Binding
	Quit key.Binding
}

// App is the main screen keymap.
var App = AppKeys{
	NextChannel: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next channel"),
	),
	PrevChannel: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous channel"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "scroll down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "oldest"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "newest"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload messages"),
	),
	OpenPlaylist: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open playlist"),
	),
	CopyPlaylist: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy playlist url"),
	),
	TogglePlaylist: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "toggle playlist button"),
	),
	Logs: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "logs"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k AppKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NextChannel, k.OpenPlaylist, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k AppKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextChannel, k.PrevChannel},
		{k.Up, k.Down, k.Top, k.Bottom, k.Refresh},
		{k.OpenPlaylist, k.CopyPlaylist, k.TogglePlaylist},
		{k.Logs, k.Help, k.Quit},
	}
}

// Overlay are the bindings shared by dismissable overlays.
var Overlay = struct {
	Close key.Binding
	Up    key.Binding
	Down  key.Binding
}{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "ctrl+x"),
		key.WithHelp("esc", "close"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "scroll down"),
	),
}
