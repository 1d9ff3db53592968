// Package hub fans property events out to the connected websocket clients.
package hub

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// DefaultSendBuffer is how many events may queue for one client before it is dropped.
const DefaultSendBuffer = 32

// Client is one connected websocket session.
type Client struct {
	UserID uuid.UUID

	send      chan []byte
	closeOnce sync.Once
}

// Send yields the events queued for the client. It is closed when the hub drops the client.
func (c *Client) Send() <-chan []byte {
	return c.send
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.send) })
}

// Hub keeps the set of connected clients.
type Hub struct {
	mu         sync.Mutex
	clients    map[*Client]struct{}
	sendBuffer int
	logger     *slog.Logger
}

// HubParams holds dependencies for the Hub, injected by Fx.
type HubParams struct {
	fx.In

	Logger *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(params HubParams) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		sendBuffer: DefaultSendBuffer,
		logger:     params.Logger,
	}
}

// Register adds a client for the user.
func (h *Hub) Register(userID uuid.UUID) *Client {
	client := &Client{
		UserID: userID,
		send:   make(chan []byte, h.sendBuffer),
	}

	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	return client
}

// Unregister removes the client and closes its queue. Safe to call more than once.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	delete(h.clients, client)
	h.mu.Unlock()

	client.close()
}

// Broadcast queues msg for every client and returns how many accepted it.
// A client whose queue is full is dropped rather than blocking the others.
func (h *Hub) Broadcast(msg []byte) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for client := range h.clients {
		select {
		case client.send <- msg:
			delivered++
		default:
			delete(h.clients, client)
			client.close()
			h.logger.Warn("[Hub] Dropped slow client", slog.String("user_id", client.UserID.String()))
		}
	}

	return delivered
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

// Close drops every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		delete(h.clients, client)
		client.close()
	}
}
