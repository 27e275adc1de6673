// Package logoverlay shows recent log entries over the main view.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/ledge/internal/keys"
	"github.com/zjrosen/ledge/internal/log"
	"github.com/zjrosen/ledge/internal/ui/overlay"
	"github.com/zjrosen/ledge/internal/ui/styles"
)

const (
	// MaxEntries is how many log lines the overlay keeps.
	MaxEntries = 500

	viewportMaxHeight = 20
	viewportMinHeight = 3
	boxMaxWidth       = 140
	boxMinWidth       = 30
)

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

// Model collects log entries and renders them in a scrollable box.
type Model struct {
	visible  bool
	minLevel log.Level
	entries  []string
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden overlay showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Append records a log entry, dropping the oldest beyond MaxEntries.
func (m Model) Append(entry string) Model {
	entry = strings.TrimSuffix(entry, "\n")
	if entry == "" {
		return m
	}
	m.entries = append(m.entries, entry)
	if over := len(m.entries) - MaxEntries; over > 0 {
		m.entries = append([]string(nil), m.entries[over:]...)
	}
	if m.visible {
		m.refresh(true)
	}
	return m
}

// Entries returns the entries that pass the current level filter.
func (m Model) Entries() []string {
	var out []string
	for _, e := range m.entries {
		if levelOf(e) >= m.minLevel {
			out = append(out, e)
		}
	}
	return out
}

// Update handles keys while the overlay is visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Overlay.Close):
			m.visible = false
			return m, func() tea.Msg { return CloseMsg{} }
		case key.Matches(msg, keys.Overlay.Up):
			m.viewport.ScrollUp(1)
		case key.Matches(msg, keys.Overlay.Down):
			m.viewport.ScrollDown(1)
		default:
			switch msg.String() {
			case "c":
				m.entries = nil
			case "d":
				m.minLevel = log.LevelDebug
			case "i":
				m.minLevel = log.LevelInfo
			case "w":
				m.minLevel = log.LevelWarn
			case "e":
				m.minLevel = log.LevelError
			default:
				return m, nil
			}
			m.refresh(true)
		}
	case tea.WindowSizeMsg:
		m = m.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

// SetSize records the screen size.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.refresh(true)
	return m
}

// Toggle flips visibility.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m.refresh(true)
	}
	return m
}

// Visible reports whether the overlay is shown.
func (m Model) Visible() bool {
	return m.visible
}

// View renders the box, or "" when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	w := m.boxWidth()
	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", w))
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).PaddingLeft(1).Render("Logs")

	body := strings.Join([]string{title, divider, m.viewport.View(), divider, m.hints()}, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(w).
		Render(body)
}

// Overlay centers the box on bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{Width: m.width, Height: m.height, Position: overlay.Center}, m.View(), bg)
}

func (m *Model) refresh(bottom bool) {
	if m.width == 0 || m.height == 0 {
		return
	}
	width := m.boxWidth() - 2
	// header, footer and border take six rows
	height := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	m.viewport = viewport.New(width, height)

	entries := m.Entries()
	if len(entries) == 0 {
		m.viewport.SetContent(lipgloss.NewStyle().Foreground(styles.TextMutedColor).Italic(true).Render("No logs to display"))
		return
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = colorize(e, width)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	if bottom {
		m.viewport.GotoBottom()
	}
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m Model) hints() string {
	muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	hints := []string{muted.Render("[c] Clear")}
	for _, f := range []struct {
		level log.Level
		label string
	}{
		{log.LevelDebug, "[d] Debug"},
		{log.LevelInfo, "[i] Info"},
		{log.LevelWarn, "[w] Warn"},
		{log.LevelError, "[e] Error"},
	} {
		if f.level == m.minLevel {
			hints = append(hints, active.Render(f.label))
		} else {
			hints = append(hints, muted.Render(f.label))
		}
	}
	return strings.Join(hints, "  ")
}

// levelOf reads the level tag the logger writes after the timestamp.
// Entries without one are treated as errors so they are never filtered out.
func levelOf(entry string) log.Level {
	switch {
	case strings.Contains(entry, "[DEBUG]"):
		return log.LevelDebug
	case strings.Contains(entry, "[INFO]"):
		return log.LevelInfo
	case strings.Contains(entry, "[WARN]"):
		return log.LevelWarn
	default:
		return log.LevelError
	}
}

func colorize(entry string, width int) string {
	if ansi.StringWidth(entry) > width {
		entry = ansi.Truncate(entry, width, "…")
	}
	var color lipgloss.TerminalColor
	switch levelOf(entry) {
	case log.LevelError:
		color = styles.StatusErrorColor
	case log.LevelWarn:
		color = styles.StatusWarningColor
	case log.LevelInfo:
		color = styles.ToastBorderInfoColor
	default:
		color = styles.TextMutedColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(entry)
}
