package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestApp_KeyAssignments(t *testing.T) {
	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"NextChannel", App.NextChannel, []string{"tab"}},
		{"PrevChannel", App.PrevChannel, []string{"shift+tab"}},
		{"Up", App.Up, []string{"k", "up"}},
		{"Down", App.Down, []string{"j", "down"}},
		{"OpenPlaylist", App.OpenPlaylist, []string{"o"}},
		{"CopyPlaylist", App.CopyPlaylist, []string{"y"}},
		{"TogglePlaylist", App.TogglePlaylist, []string{"p"}},
		{"Logs", App.Logs, []string{"ctrl+x"}},
		{"Quit", App.Quit, []string{"q", "ctrl+c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
			require.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestApp_NoDuplicateKeys(t *testing.T) {
	seen := map[string]string{}
	for _, group := range App.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				prev, dup := seen[k]
				require.False(t, dup, "key %q bound to both %q and %q", k, prev, b.Help().Desc)
				seen[k] = b.Help().Desc
			}
		}
	}
}

func TestApp_ShortHelpIsSubsetOfFullHelp(t *testing.T) {
	full := map[string]bool{}
	for _, group := range App.FullHelp() {
		for _, b := range group {
			full[b.Help().Key] = true
		}
	}
	for _, b := range App.ShortHelp() {
		require.True(t, full[b.Help().Key], "%s missing from full help", b.Help().Key)
	}
}

func TestOverlay_CloseKeys(t *testing.T) {
	require.Equal(t, []string{"esc", "q", "ctrl+x"}, Overlay.Close.Keys())
}
