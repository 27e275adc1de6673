// Package app contains the root application model.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/ledge/internal/config"
	"github.com/zjrosen/ledge/internal/keys"
	"github.com/zjrosen/ledge/internal/log"
	"github.com/zjrosen/ledge/internal/plugins"
	"github.com/zjrosen/ledge/internal/plugins/playlist"
	"github.com/zjrosen/ledge/internal/pubsub"
	"github.com/zjrosen/ledge/internal/store"
	"github.com/zjrosen/ledge/internal/system"
	"github.com/zjrosen/ledge/internal/toolbar"
	"github.com/zjrosen/ledge/internal/ui/markdown"
	"github.com/zjrosen/ledge/internal/ui/shared/logoverlay"
	"github.com/zjrosen/ledge/internal/ui/toaster"
	"github.com/zjrosen/ledge/internal/watcher"
)

// messageLimit is how many of a channel's newest messages are shown.
const messageLimit = 200

// Store is the read side of the message store.
type Store interface {
	Channels(ctx context.Context) ([]store.Channel, error)
	Messages(ctx context.Context, channelID string, limit int) ([]store.Message, error)
}

// Selection is the channel the user is looking at. It is shared with
// contributors that render per channel, such as the playlist button.
type Selection struct {
	channelID string
}

// ChannelID returns the selected channel id, or "" when none is selected.
func (s *Selection) ChannelID() string {
	if s == nil {
		return ""
	}
	return s.channelID
}

func (s *Selection) set(id string) {
	if s != nil {
		s.channelID = id
	}
}

// Services are the dependencies the app is built from.
type Services struct {
	Store     Store
	Config    config.Config
	Registry  *toolbar.Registry
	Plugins   *plugins.Manager
	Playlist  *playlist.Plugin   // nil when the plugin is not installed
	Resolver  *playlist.Resolver // nil when the plugin is not installed
	Selection *Selection
	Tracer    trace.Tracer
	Clock     system.Clock
}

// Model is the root application state.
type Model struct {
	svc Services
	ctx context.Context

	width  int
	height int

	toolbar  toolbar.Model
	channels []store.Channel
	selected int
	messages []store.Message
	viewport viewport.Model
	renderer *markdown.Renderer
	help     help.Model
	showHelp bool
	loadErr  error

	toaster    toaster.Model
	debugMode  bool
	logOverlay logoverlay.Model

	cancel         context.CancelFunc
	watcherHandle  *watcher.Watcher
	watchListener  *pubsub.ContinuousListener[string]
	logListener    *log.LogListener
	pluginListener *pubsub.ContinuousListener[string]
}

// New creates the application model. debugMode enables the log overlay.
func New(svc Services, debugMode bool) Model {
	if svc.Clock == nil {
		svc.Clock = system.RealClock{}
	}
	if svc.Selection == nil {
		svc.Selection = &Selection{}
	}
	ctx, cancel := context.WithCancel(context.Background())

	var opts []toolbar.Option
	if svc.Config.UI.Separator != "" {
		opts = append(opts, toolbar.WithSeparator(svc.Config.UI.Separator))
	}
	if svc.Tracer != nil {
		opts = append(opts, toolbar.WithTracer(svc.Tracer))
	}

	m := Model{
		svc:        svc,
		ctx:        ctx,
		cancel:     cancel,
		toolbar:    toolbar.New(svc.Registry, opts...),
		help:       help.New(),
		toaster:    toaster.New(),
		debugMode:  debugMode,
		logOverlay: logoverlay.New(),
	}

	if svc.Config.AutoRefresh && svc.Config.DBPath != "" {
		m.startWatcher(svc.Config.DBPath)
	}
	if debugMode {
		m.logListener = log.NewListener(ctx)
	}
	if svc.Plugins != nil {
		m.pluginListener = pubsub.NewContinuousListener(ctx, svc.Plugins.Events())
	}
	return m
}

func (m *Model) startWatcher(dbPath string) {
	w, err := watcher.New(watcher.DefaultConfig(dbPath))
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to create watcher", err, "path", dbPath)
		return
	}
	if err := w.Start(); err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to start watcher", err, "path", dbPath)
		_ = w.Stop()
		return
	}
	m.watcherHandle = w
	m.watchListener = pubsub.NewContinuousListener(m.ctx, w.Broker())
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadChannels(),
		m.listenWatcher(),
		m.listenLogs(),
		m.listenPlugins(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.toolbar = m.toolbar.SetSize(msg.Width)
		m.logOverlay = m.logOverlay.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tea.MouseMsg:
		if m.logOverlay.Visible() {
			return m, nil
		}
		if cmd := m.toolbar.HandleMouse(msg); cmd != nil {
			return m, cmd
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case channelsLoadedMsg:
		return m.handleChannels(msg)

	case messagesLoadedMsg:
		if msg.channelID != m.svc.Selection.ChannelID() {
			return m, nil
		}
		if msg.err != nil {
			log.ErrorErr(log.CatStore, "Failed to load messages", msg.err, "channel", msg.channelID)
			return m.toast(fmt.Sprintf("Could not load messages: %v", msg.err), toaster.StyleError)
		}
		m.messages = msg.messages
		m.refreshMessages(true)
		return m, nil

	case storeChangedMsg:
		log.Debug(log.CatWatcher, "Store changed, reloading", "path", msg.path)
		if m.svc.Resolver != nil {
			m.svc.Resolver.Invalidate()
		}
		return m, tea.Batch(m.loadChannels(), m.listenWatcher())

	case logEntryMsg:
		m.logOverlay = m.logOverlay.Append(msg.entry)
		return m, m.listenLogs()

	case pluginEventMsg:
		state := "enabled"
		if msg.event.Type == pubsub.UnregisteredEvent {
			state = "disabled"
		}
		next, cmd := m.toast(fmt.Sprintf("%s %s", msg.event.Payload, state), toaster.StyleInfo)
		return next, tea.Batch(cmd, m.listenPlugins())

	case toolbar.ActivatedMsg:
		log.Debug(log.CatToolbar, "Contribution clicked", "id", msg.ID)
		return m, nil

	case playlist.OpenedMsg:
		return m.toast("Opened playlist in browser", toaster.StyleSuccess)

	case playlist.CopiedMsg:
		return m.toast("Playlist URL copied", toaster.StyleSuccess)

	case playlist.FailedMsg:
		switch {
		case errors.Is(msg.Err, playlist.ErrNoChannel):
			return m.toast("No channel selected", toaster.StyleWarn)
		case errors.Is(msg.Err, playlist.ErrNoVideos):
			return m.toast("No YouTube links in this channel", toaster.StyleWarn)
		}
		return m.toast(fmt.Sprintf("Playlist %s failed: %v", msg.Action, msg.Err), toaster.StyleError)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case logoverlay.CloseMsg:
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.App.Quit):
		return m, tea.Quit

	case m.debugMode && key.Matches(msg, keys.App.Logs):
		m.logOverlay = m.logOverlay.Toggle()
		return m, nil

	case key.Matches(msg, keys.App.Help):
		m.showHelp = !m.showHelp
		m.resize()
		return m, nil

	case key.Matches(msg, keys.App.NextChannel):
		return m.selectChannel(m.selected + 1)

	case key.Matches(msg, keys.App.PrevChannel):
		return m.selectChannel(m.selected - 1)

	case key.Matches(msg, keys.App.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, keys.App.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, keys.App.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, keys.App.Bottom):
		m.viewport.GotoBottom()

	case key.Matches(msg, keys.App.Refresh):
		if m.svc.Resolver != nil {
			m.svc.Resolver.Invalidate(m.svc.Selection.ChannelID())
		}
		return m, m.loadChannels()

	case key.Matches(msg, keys.App.OpenPlaylist):
		if !m.playlistRunning() {
			return m.toast("Playlist is disabled, press p to enable", toaster.StyleWarn)
		}
		return m, m.svc.Playlist.Open()

	case key.Matches(msg, keys.App.CopyPlaylist):
		if !m.playlistRunning() {
			return m.toast("Playlist is disabled, press p to enable", toaster.StyleWarn)
		}
		return m, m.svc.Playlist.Copy()

	case key.Matches(msg, keys.App.TogglePlaylist):
		if m.svc.Plugins == nil {
			return m, nil
		}
		if _, err := m.svc.Plugins.Toggle(playlist.Name); err != nil {
			return m.toast(err.Error(), toaster.StyleError)
		}
	}
	return m, nil
}

func (m Model) handleChannels(msg channelsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatStore, "Failed to load channels", msg.err)
		m.loadErr = msg.err
		return m, nil
	}
	m.loadErr = nil

	current := m.svc.Selection.ChannelID()
	m.channels = msg.channels
	m.selected = 0
	for i, c := range m.channels {
		if c.ID == current {
			m.selected = i
			break
		}
	}
	if len(m.channels) == 0 {
		m.svc.Selection.set("")
		m.messages = nil
		m.refreshMessages(false)
		return m, nil
	}
	m.svc.Selection.set(m.channels[m.selected].ID)
	return m, m.loadMessages(m.channels[m.selected].ID)
}

// selectChannel moves the selection, wrapping at both ends.
func (m Model) selectChannel(i int) (tea.Model, tea.Cmd) {
	n := len(m.channels)
	if n == 0 {
		return m, nil
	}
	m.selected = (i%n + n) % n
	ch := m.channels[m.selected]
	m.svc.Selection.set(ch.ID)
	m.messages = nil
	m.refreshMessages(false)
	log.Debug(log.CatUI, "Selected channel", "channel", ch.Name)
	return m, m.loadMessages(ch.ID)
}

func (m Model) playlistRunning() bool {
	return m.svc.Playlist != nil && m.svc.Plugins != nil && m.svc.Plugins.Enabled(playlist.Name)
}

func (m Model) toast(message string, style toaster.Style) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(message, style, toaster.DefaultDuration)
	return m, cmd
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.cancel()
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}
