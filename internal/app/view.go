package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/ledge/internal/keys"
	"github.com/zjrosen/ledge/internal/log"
	"github.com/zjrosen/ledge/internal/store"
	"github.com/zjrosen/ledge/internal/system"
	"github.com/zjrosen/ledge/internal/toolbar"
	"github.com/zjrosen/ledge/internal/ui/markdown"
	"github.com/zjrosen/ledge/internal/ui/styles"
)

const (
	channelPaneWidth = 24
	paneFrame        = 2 // rounded border on each side
	appName          = "ledge"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := m.toolbar.View(m.hostElements())
	footer := m.footer()
	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), paneFrame+1)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.channelPane(bodyHeight),
		m.messagePane(bodyHeight),
	)
	view := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)

	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	if m.debugMode && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}
	return zone.Scan(view)
}

// hostElements are the app's own toolbar items; contributions are merged
// around them.
func (m Model) hostElements() []toolbar.Unit {
	channel := styles.ToolbarHintStyle.Render("no channel")
	if ch, ok := m.currentChannel(); ok {
		channel = "#" + ch.Name
	}
	return []toolbar.Unit{
		toolbar.Static(styles.ToolbarTitleStyle.Render(appName)),
		toolbar.Static(channel),
		toolbar.Static(styles.ToolbarHintStyle.Render("? help")),
	}
}

func (m Model) footer() string {
	if m.showHelp {
		return m.help.FullHelpView(keys.App.FullHelp())
	}
	return m.help.ShortHelpView(keys.App.ShortHelp())
}

func (m Model) currentChannel() (store.Channel, bool) {
	if m.selected < 0 || m.selected >= len(m.channels) {
		return store.Channel{}, false
	}
	return m.channels[m.selected], true
}

func (m Model) channelPane(height int) string {
	inner := channelPaneWidth - paneFrame
	lines := make([]string, 0, len(m.channels))
	for i, c := range m.channels {
		label := styles.PadRight("# "+c.Name, inner)
		if i == m.selected {
			lines = append(lines, styles.ChannelSelectedStyle.Render(label))
		} else {
			lines = append(lines, styles.ChannelStyle.Render(label))
		}
	}
	return styles.TitledPane(strings.Join(lines, "\n"), "Channels", channelPaneWidth, height, false)
}

func (m Model) messagePane(height int) string {
	title := "Messages"
	if ch, ok := m.currentChannel(); ok {
		title = "#" + ch.Name
	}
	var content string
	switch {
	case m.loadErr != nil:
		content = styles.ErrorStyle.Render("Could not load channels: " + m.loadErr.Error())
	case len(m.channels) == 0:
		content = styles.MessageTimeStyle.Render("No channels yet. Add some with `ledge import <file.yaml>`.")
	default:
		content = m.viewport.View()
	}
	return styles.TitledPane(content, title, m.width-channelPaneWidth, height, true)
}

// messageArea is the inner size of the message pane.
func (m Model) messageArea() (width, height int) {
	width = max(m.width-channelPaneWidth-paneFrame, 1)
	height = max(m.height-1-lipgloss.Height(m.footer())-paneFrame, 1)
	return width, height
}

// resize fits the viewport and markdown renderer to the window.
func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	w, h := m.messageArea()
	if m.viewport.Width == 0 && m.viewport.Height == 0 {
		m.viewport = viewport.New(w, h)
	} else {
		m.viewport.Width = w
		m.viewport.Height = h
	}

	if m.renderer == nil || m.renderer.Width() != w {
		r, err := markdown.New(w, m.svc.Config.UI.MarkdownStyle)
		if err != nil {
			log.ErrorErr(log.CatUI, "Failed to create markdown renderer", err)
		}
		m.renderer = r
	}
	m.refreshMessages(false)
}

// refreshMessages re-renders the message list into the viewport.
func (m *Model) refreshMessages(bottom bool) {
	if m.viewport.Width == 0 {
		return
	}
	width := m.viewport.Width
	now := m.svc.Clock.Now()

	var blocks []string
	if ch, ok := m.currentChannel(); ok && ch.Topic != "" {
		blocks = append(blocks, styles.MessageTimeStyle.Render(wordwrap.String(ch.Topic, width)))
	}
	if len(m.messages) == 0 {
		blocks = append(blocks, styles.MessageTimeStyle.Render("No messages"))
	}
	for _, msg := range m.messages {
		blocks = append(blocks, m.renderMessage(msg, width, now))
	}

	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
	if bottom {
		m.viewport.GotoBottom()
	}
}

func (m Model) renderMessage(msg store.Message, width int, now time.Time) string {
	var b strings.Builder
	b.WriteString(styles.MessageAuthorStyle.Render(msg.Author))
	b.WriteString(" ")
	b.WriteString(styles.MessageTimeStyle.Render(system.RelativeTime(msg.CreatedAt, now)))

	if msg.Content != "" {
		b.WriteString("\n")
		b.WriteString(m.renderContent(msg.Content, width))
	}
	for _, e := range msg.Embeds {
		b.WriteString("\n")
		if e.Title != "" {
			b.WriteString(wordwrap.String("↳ "+e.Title, width))
			b.WriteString("\n  ")
			b.WriteString(styles.MessageTimeStyle.Render(truncate.StringWithTail(e.URL, uint(max(width-2, 1)), "…")))
			continue
		}
		b.WriteString(styles.MessageTimeStyle.Render(truncate.StringWithTail("↳ "+e.URL, uint(width), "…")))
	}
	return b.String()
}

func (m Model) renderContent(content string, width int) string {
	if m.renderer != nil {
		out, err := m.renderer.Render(content)
		if err == nil {
			return strings.Trim(out, "\n")
		}
		log.ErrorErr(log.CatUI, "Failed to render markdown", err)
	}
	return wordwrap.String(content, width)
}
