// Package toaster shows short-lived notifications over the main view.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/ledge/internal/ui/overlay"
	"github.com/zjrosen/ledge/internal/ui/styles"
)

// Style selects the toast's icon and border color.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 3 * time.Second

// Model holds the toast currently shown, if any.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int
}

// New creates a hidden toaster.
func New() Model {
	return Model{}
}

// Show replaces the current toast and returns a command that dismisses it
// after d. A toast shown later is not dismissed by an earlier timer.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.seq++
	m.message = message
	m.style = style
	m.visible = true
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{seq: seq} })
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		return m.Hide()
	}
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the text of the current toast.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box, or "" when hidden.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	box := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	icon := "✓"
	switch m.style {
	case StyleError:
		box = box.BorderForeground(styles.ToastBorderErrorColor)
		icon = "✗"
	case StyleInfo:
		box = box.BorderForeground(styles.ToastBorderInfoColor)
		icon = "i"
	case StyleWarn:
		box = box.BorderForeground(styles.ToastBorderWarnColor)
		icon = "!"
	default:
		box = box.BorderForeground(styles.ToastBorderSuccessColor)
	}
	return box.Render(icon + " " + m.message)
}

// Overlay draws the toast in the bottom right corner of bg.
func (m Model) Overlay(bg string, width, height int) string {
	fg := m.View()
	if fg == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.BottomRight,
		PadX:     1,
		PadY:     1,
	}, fg, bg)
}

// DismissMsg hides the toast it was scheduled for.
type DismissMsg struct {
	seq int
}
