package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestToaster_ShowAndHide(t *testing.T) {
	m := New()
	require.False(t, m.Visible())
	require.Empty(t, m.View())

	m, cmd := m.Show("Playlist copied", StyleSuccess, time.Millisecond)
	require.NotNil(t, cmd)
	require.True(t, m.Visible())
	require.Equal(t, "Playlist copied", m.Message())

	view := ansi.Strip(m.View())
	require.Contains(t, view, "✓ Playlist copied")
	require.Contains(t, view, "╭")

	m = m.Hide()
	require.False(t, m.Visible())
	require.Empty(t, m.View())
}

func TestToaster_Icons(t *testing.T) {
	tests := []struct {
		style Style
		icon  string
	}{
		{StyleSuccess, "✓"},
		{StyleError, "✗"},
		{StyleInfo, "i"},
		{StyleWarn, "!"},
	}
	for _, tt := range tests {
		m, _ := New().Show("msg", tt.style, time.Second)
		require.Contains(t, ansi.Strip(m.View()), tt.icon+" msg")
	}
}

func TestToaster_StaleDismissIgnored(t *testing.T) {
	m, first := New().Show("first", StyleInfo, time.Millisecond)
	m, second := m.Show("second", StyleInfo, time.Millisecond)

	m = m.Update(first())
	require.True(t, m.Visible(), "dismiss for the replaced toast is ignored")
	require.Equal(t, "second", m.Message())

	m = m.Update(second())
	require.False(t, m.Visible())
}

func TestToaster_Overlay(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 30)+"\n", 6), "\n")

	require.Equal(t, bg, New().Overlay(bg, 30, 6))

	m, _ := New().Show("saved", StyleSuccess, time.Second)
	out := strings.Split(ansi.Strip(m.Overlay(bg, 30, 6)), "\n")
	require.Len(t, out, 6)
	require.Contains(t, out[3], "saved")
	require.True(t, strings.HasSuffix(out[3], "│."), "box sits one column from the right edge: %q", out[3])
}
