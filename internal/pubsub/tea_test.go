package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReturnsEvent(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ch := b.Subscribe(t.Context())
	b.Publish(UpdatedEvent, "ledge.db")

	msg := ListenCmd(t.Context(), ch)()
	ev, ok := msg.(Event[string])
	require.True(t, ok)
	require.Equal(t, UpdatedEvent, ev.Type)
	require.Equal(t, "ledge.db", ev.Payload)
}

func TestListenCmd_NilOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := make(chan Event[string])
	require.Nil(t, ListenCmd(ctx, ch)())
}

func TestListenCmd_NilOnClosedChannel(t *testing.T) {
	ch := make(chan Event[string])
	close(ch)
	require.Nil(t, ListenCmd(context.Background(), ch)())
}

func TestContinuousListener_ListensRepeatedly(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	l := NewContinuousListener[int](t.Context(), b)
	require.Equal(t, 1, b.SubscriberCount())

	b.Publish(CreatedEvent, 1)
	b.Publish(CreatedEvent, 2)

	first := l.Listen()().(Event[int])
	second := l.Listen()().(Event[int])
	require.Equal(t, []int{1, 2}, []int{first.Payload, second.Payload})
}
