package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"erp-agent-nexus/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const clusterChannel = "chat_push_events"

// Frame is what a client receives over the socket.
type Frame struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Hub struct {
	// User key -> connected clients (multi-device)
	clients map[string][]*Client

	register   chan *Client
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	mu sync.RWMutex

	// Optional; mirrors frames to other instances
	rdb *redis.Client

	// Unique per process so an instance ignores its own mirrored frames
	instanceId string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, instanceId string, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string][]*Client),
		rdb:        rdb,
		instanceId: instanceId,
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserKey] = append(h.clients[client.UserKey], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserKey})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserKey]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserKey] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserKey]) == 0 {
					delete(h.clients, client.UserKey)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserKey})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Register adds a client. It reports false once Run has returned.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client. It is a no-op once Run has returned.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Connected reports how many sockets a user has on this instance.
func (h *Hub) Connected(userKey string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userKey])
}

// Send pushes a frame to every socket of userKey, here and on other instances.
func (h *Hub) Send(userKey string, frame Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal frame", map[string]interface{}{"error": err.Error(), "type": frame.Type})
		return
	}

	h.deliverLocal(userKey, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(clusterMessage{
			Origin:       h.instanceId,
			TargetUserId: userKey,
			Message:      data,
		})
		if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
			h.logger.Warn("Hub", "Failed to mirror frame to Redis", map[string]interface{}{"error": err.Error()})
		}
	}
}

type clusterMessage struct {
	Origin       string          `json:"origin"`
	TargetUserId string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

// A full buffer drops the frame; push is informational.
func (h *Hub) deliverLocal(userKey string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[userKey] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"user_id": userKey})
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var payload clusterMessage
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				h.logger.Warn("Hub", "Redis msg parse error", map[string]interface{}{"error": err.Error()})
				continue
			}
			if payload.Origin == h.instanceId {
				continue
			}
			h.deliverLocal(payload.TargetUserId, payload.Message)
		}
	}
}
