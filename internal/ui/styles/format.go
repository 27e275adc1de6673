package styles

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// TruncateString truncates a string to fit within maxWidth cells, adding an
// ellipsis if needed. Grapheme clusters are never split.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if uniseg.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}

	var b strings.Builder
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if width+w > maxWidth-1 {
			break
		}
		b.WriteString(g.Str())
		width += w
	}
	return b.String() + "…"
}

// PadRight pads s with spaces to exactly width cells, truncating when longer.
func PadRight(s string, width int) string {
	s = TruncateString(s, width)
	return runewidth.FillRight(s, width)
}
