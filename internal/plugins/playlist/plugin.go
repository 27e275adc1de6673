package playlist

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/ledge/internal/log"
	"github.com/zjrosen/ledge/internal/plugins"
	"github.com/zjrosen/ledge/internal/system"
	"github.com/zjrosen/ledge/internal/toolbar"
	"github.com/zjrosen/ledge/internal/ui/styles"
)

// Name is the plugin and contribution id.
const Name = "YoutubePlaylistify"

// Description is shown by `ledge plugins`.
const Description = "Create a Youtube playlist from the 50 most recently posted Youtube links in a channel"

// OpenedMsg reports that the playlist was handed to the browser.
type OpenedMsg struct{ URL string }

// CopiedMsg reports that the playlist URL was copied.
type CopiedMsg struct{ URL string }

// FailedMsg reports that opening or copying failed.
type FailedMsg struct {
	Action string
	Err    error
}

// Plugin is the playlist toolbar button.
type Plugin struct {
	plugins.Base

	resolver  *Resolver
	channel   func() string
	opener    system.Opener
	clipboard system.Clipboard
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithOpener replaces the browser opener.
func WithOpener(o system.Opener) Option {
	return func(p *Plugin) { p.opener = o }
}

// WithClipboard replaces the system clipboard.
func WithClipboard(c system.Clipboard) Option {
	return func(p *Plugin) { p.clipboard = c }
}

// New creates the plugin. channel returns the id of the channel the user is
// looking at, or "" when none is selected.
func New(resolver *Resolver, channel func() string, opts ...Option) *Plugin {
	p := &Plugin{
		resolver:  resolver,
		channel:   channel,
		opener:    system.BrowserOpener{},
		clipboard: system.SystemClipboard{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Base = plugins.Base{
		ID:   Name,
		Desc: Description,
		Contribution: toolbar.Contribution{
			Unit:      p,
			Position:  toolbar.At(0),
			Isolation: toolbar.NoopIsolation,
		},
	}
	return p
}

// Current resolves the playlist for the selected channel.
func (p *Plugin) Current(ctx context.Context) (Playlist, error) {
	return p.resolver.Resolve(ctx, p.channel())
}

// Render implements toolbar.Unit. The button is hidden when the channel has
// nothing to play. Render runs inside View: the host warms the resolver
// when it loads a channel's messages, so a store query here only happens
// on a cache miss, for one channel's recent messages.
func (p *Plugin) Render() (string, error) {
	pl, err := p.Current(context.Background())
	if errors.Is(err, ErrNoChannel) || errors.Is(err, ErrNoVideos) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return styles.ToolbarButtonStyle.Render(fmt.Sprintf("▶ Playlist (%d)", len(pl.VideoIDs))), nil
}

// Activate implements toolbar.Activator by opening the playlist.
func (p *Plugin) Activate() tea.Cmd {
	return p.Open()
}

// Open returns a command that opens the playlist in the browser.
func (p *Plugin) Open() tea.Cmd {
	return p.run("open", func(url string) (tea.Msg, error) {
		if err := p.opener.Open(url); err != nil {
			return nil, err
		}
		return OpenedMsg{URL: url}, nil
	})
}

// Copy returns a command that copies the playlist URL.
func (p *Plugin) Copy() tea.Cmd {
	return p.run("copy", func(url string) (tea.Msg, error) {
		if err := p.clipboard.Copy(url); err != nil {
			return nil, err
		}
		return CopiedMsg{URL: url}, nil
	})
}

// The URL is resolved on the update loop; only the side effect runs in the
// command goroutine.
func (p *Plugin) run(action string, do func(url string) (tea.Msg, error)) tea.Cmd {
	pl, err := p.Current(context.Background())
	if err != nil {
		log.Debug(log.CatPlugin, "No playlist to "+action, "error", err)
		return func() tea.Msg { return FailedMsg{Action: action, Err: err} }
	}
	return func() tea.Msg {
		msg, err := do(pl.URL)
		if err != nil {
			log.ErrorErr(log.CatPlugin, "Playlist "+action+" failed", err, "url", pl.URL)
			return FailedMsg{Action: action, Err: err}
		}
		return msg
	}
}
