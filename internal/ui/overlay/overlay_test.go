package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func grid(w, h int, ch string) string {
	rows := make([]string, h)
	for i := range rows {
		rows[i] = strings.Repeat(ch, w)
	}
	return strings.Join(rows, "\n")
}

func TestPlace_Positions(t *testing.T) {
	bg := grid(6, 5, ".")
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"center", Config{Width: 6, Height: 5, Position: Center}, "......\n......\n..XX..\n......\n......"},
		{"top", Config{Width: 6, Height: 5, Position: Top, PadY: 1}, "......\n..XX..\n......\n......\n......"},
		{"bottom", Config{Width: 6, Height: 5, Position: Bottom}, "......\n......\n......\n......\n..XX.."},
		{"bottom right", Config{Width: 6, Height: 5, Position: BottomRight, PadX: 1, PadY: 1}, "......\n......\n......\n...XX.\n......"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Place(tt.cfg, "XX", bg))
		})
	}
}

func TestPlace_OversizedForegroundClampsToOrigin(t *testing.T) {
	out := Place(Config{Width: 3, Height: 2}, "XXXXX\nXXXXX\nXXXXX", grid(3, 2, "."))
	require.Equal(t, "XXXXX\nXXXXX", out)
}

func TestPlace_PadsShortBackground(t *testing.T) {
	out := Place(Config{Width: 4, Height: 3, Position: Bottom}, "X", "..")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, " X  ", lines[2])
	require.Equal(t, "..", lines[0])
}

func TestPlace_KeepsBackgroundStyling(t *testing.T) {
	bg := lipgloss.NewStyle().Bold(true).Render("abcdef")
	out := Place(Config{Width: 6, Height: 1}, "XX", bg)
	require.Equal(t, "abXXef", ansi.Strip(out))
}
