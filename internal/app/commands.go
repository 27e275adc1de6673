package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/ledge/internal/pubsub"
	"github.com/zjrosen/ledge/internal/store"
)

type channelsLoadedMsg struct {
	channels []store.Channel
	err      error
}

type messagesLoadedMsg struct {
	channelID string
	messages  []store.Message
	err       error
}

// The watcher, logger and plugin manager all publish pubsub.Event[string],
// so each listener tags its events with its own message type.
type (
	storeChangedMsg struct{ path string }
	logEntryMsg     struct{ entry string }
	pluginEventMsg  struct{ event pubsub.Event[string] }
)

func (m Model) loadChannels() tea.Cmd {
	if m.svc.Store == nil {
		return nil
	}
	ctx, st := m.ctx, m.svc.Store
	return func() tea.Msg {
		channels, err := st.Channels(ctx)
		return channelsLoadedMsg{channels: channels, err: err}
	}
}

func (m Model) loadMessages(channelID string) tea.Cmd {
	if m.svc.Store == nil {
		return nil
	}
	ctx, st, resolver := m.ctx, m.svc.Store, m.svc.Resolver
	return func() tea.Msg {
		msgs, err := st.Messages(ctx, channelID, messageLimit)
		if err == nil && resolver != nil {
			// Warms the playlist cache so the toolbar button renders
			// without touching the store.
			_, _ = resolver.Resolve(ctx, channelID)
		}
		return messagesLoadedMsg{channelID: channelID, messages: msgs, err: err}
	}
}

func (m Model) listenWatcher() tea.Cmd {
	if m.watchListener == nil {
		return nil
	}
	return tag(m.watchListener.Listen(), func(e pubsub.Event[string]) tea.Msg {
		return storeChangedMsg{path: e.Payload}
	})
}

func (m Model) listenLogs() tea.Cmd {
	if m.logListener == nil {
		return nil
	}
	return tag(m.logListener.Listen(), func(e pubsub.Event[string]) tea.Msg {
		return logEntryMsg{entry: e.Payload}
	})
}

func (m Model) listenPlugins() tea.Cmd {
	if m.pluginListener == nil {
		return nil
	}
	return tag(m.pluginListener.Listen(), func(e pubsub.Event[string]) tea.Msg {
		return pluginEventMsg{event: e}
	})
}

// tag converts the event a listen command yields. A nil result, which ends
// the subscription, stays nil.
func tag(listen tea.Cmd, wrap func(pubsub.Event[string]) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		e, ok := listen().(pubsub.Event[string])
		if !ok {
			return nil
		}
		return wrap(e)
	}
}
