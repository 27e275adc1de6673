package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TitledPane draws content in a rounded box of the given outer size with the
// title set into the top edge:
//
//	╭─ Channels ─────╮
//	│ # general      │
//	╰────────────────╯
//
// Content is clipped to the box. Focused panes use BorderFocusColor.
func TitledPane(content, title string, width, height int, focused bool) string {
	b := lipgloss.RoundedBorder()
	var color lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		color = BorderFocusColor
	}
	edge := lipgloss.NewStyle().Foreground(color)

	inner := max(width-2, 1)
	rows := max(height-2, 1)

	body := lipgloss.NewStyle().
		Width(inner).
		Height(rows).
		MaxWidth(inner).
		MaxHeight(rows).
		Render(content)
	lines := strings.Split(body, "\n")

	var out strings.Builder
	out.WriteString(topEdge(title, inner, b, edge))
	for i := range rows {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		if w := lipgloss.Width(line); w < inner {
			line += strings.Repeat(" ", inner-w)
		}
		out.WriteString("\n" + edge.Render(b.Left) + line + edge.Render(b.Right))
	}
	out.WriteString("\n" + edge.Render(b.BottomLeft+strings.Repeat(b.Bottom, inner)+b.BottomRight))
	return out.String()
}

// topEdge builds ╭─ title ───╮, dropping the title when it cannot fit.
func topEdge(title string, inner int, b lipgloss.Border, edge lipgloss.Style) string {
	// "─ " before the title and " ─" after
	const chrome = 4
	if title == "" || inner <= chrome {
		return edge.Render(b.TopLeft + strings.Repeat(b.Top, inner) + b.TopRight)
	}
	title = TruncateString(title, inner-chrome)
	rest := inner - 3 - lipgloss.Width(title)
	return edge.Render(b.TopLeft+b.Top+" ") +
		lipgloss.NewStyle().Foreground(OverlayTitleColor).Bold(true).Render(title) +
		edge.Render(" "+strings.Repeat(b.Top, rest)+b.TopRight)
}
