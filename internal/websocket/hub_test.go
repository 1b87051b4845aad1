package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"erp-agent-nexus/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	h := NewHub(nil, "test", logger.NewNopLogger())
	go h.Run(ctx)
	return h
}

func TestHubDeliversToUserSockets(t *testing.T) {
	h := startHub(t)
	phone := &Client{Hub: h, UserKey: "alice", Send: make(chan []byte, 4)}
	laptop := &Client{Hub: h, UserKey: "alice", Send: make(chan []byte, 4)}
	other := &Client{Hub: h, UserKey: "bob", Send: make(chan []byte, 4)}
	h.register <- phone
	h.register <- laptop
	h.register <- other

	require.Eventually(t, func() bool { return h.Connected("alice") == 2 }, time.Second, 5*time.Millisecond)

	h.Send("alice", Frame{Type: "chat_event", Data: map[string]string{"session_id": "s1"}})

	for _, c := range []*Client{phone, laptop} {
		select {
		case raw := <-c.Send:
			var f map[string]interface{}
			require.NoError(t, json.Unmarshal(raw, &f))
			assert.Equal(t, "chat_event", f["type"])
		case <-time.After(time.Second):
			t.Fatal("frame not delivered")
		}
	}
	assert.Empty(t, other.Send)
}

func TestHubUnregisterClosesSend(t *testing.T) {
	h := startHub(t)
	c := &Client{Hub: h, UserKey: "alice", Send: make(chan []byte, 1)}
	h.register <- c
	h.unregister <- c

	require.Eventually(t, func() bool { return h.Connected("alice") == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	h := startHub(t)
	c := &Client{Hub: h, UserKey: "alice", Send: make(chan []byte, 1)}
	h.register <- c
	require.Eventually(t, func() bool { return h.Connected("alice") == 1 }, time.Second, 5*time.Millisecond)

	h.Send("alice", Frame{Type: "a"})
	h.Send("alice", Frame{Type: "b"})

	assert.Len(t, c.Send, 1)
	assert.Equal(t, 1, h.Connected("alice"))
}

func TestHubStoppedDoesNotBlockClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(nil, "test", logger.NewNopLogger())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		h.Run(ctx)
	}()

	c := &Client{Hub: h, UserKey: "alice", Send: make(chan []byte, 1)}
	require.True(t, h.Register(c))
	cancel()
	<-stopped

	returned := make(chan bool, 1)
	go func() {
		h.Unregister(c)
		returned <- h.Register(&Client{Hub: h, UserKey: "bob", Send: make(chan []byte, 1)})
	}()
	select {
	case ok := <-returned:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("register after stop blocked")
	}
}
