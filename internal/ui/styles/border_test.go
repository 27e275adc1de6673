package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func pane(content, title string, w, h int) []string {
	lipgloss.SetColorProfile(termenv.Ascii)
	return strings.Split(ansi.Strip(TitledPane(content, title, w, h, false)), "\n")
}

func TestTitledPane_Layout(t *testing.T) {
	lines := pane("# general\n# music", "Channels", 16, 5)
	require.Equal(t, []string{
		"╭─ Channels ───╮",
		"│# general     │",
		"│# music       │",
		"│              │",
		"╰──────────────╯",
	}, lines)
}

func TestTitledPane_EveryLineHasOuterWidth(t *testing.T) {
	for _, line := range pane("a line that is much longer than the pane", "Messages", 12, 4) {
		require.Equal(t, 12, lipgloss.Width(line), "line %q", line)
	}
}

func TestTitledPane_ClipsRows(t *testing.T) {
	lines := pane("1\n2\n3\n4\n5", "", 5, 4)
	require.Len(t, lines, 4)
	require.Equal(t, "╭───╮", lines[0])
	require.Equal(t, "│1  │", lines[1])
	require.Equal(t, "│2  │", lines[2])
}

func TestTitledPane_LongTitleTruncated(t *testing.T) {
	top := pane("", "#a-really-long-channel-name", 14, 3)[0]
	require.Equal(t, "╭─ #a-real… ─╮", top)
}

func TestTitledPane_NarrowDropsTitle(t *testing.T) {
	top := pane("", "Channels", 6, 3)[0]
	require.Equal(t, "╭────╮", top)
}
