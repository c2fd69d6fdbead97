package fanout

import (
	"context"
	"testing"
	"time"

	"github.com/architeacher/svc-web-analyzer/internal/config"
	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	return NewHub(infrastructure.New(config.LoggingConfig{Level: "disabled"}))
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := newTestHub(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- hub.Start(ctx) }()

	client := &Client{id: 1, hub: hub, send: make(chan Message, 4)}
	hub.Register <- client

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast(Message{Topic: "orders.status-changed", Payload: map[string]any{"orderId": "abc"}})

	select {
	case msg := <-client.send:
		assert.Equal(t, "orders.status-changed", msg.Topic)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}

	hub.Unregister <- client
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestHub_BroadcastDropsWhenFull(t *testing.T) {
	hub := newTestHub(t)
	hub.broadcast = make(chan Message) // unbuffered: next send must not block

	hub.Broadcast(Message{Topic: "users.status-changed"})
}
