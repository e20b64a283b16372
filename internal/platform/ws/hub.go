package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/taskdeck/taskdeck-api/internal/events"
)

// envelope is the wire framing of every outbound event.
type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// inbound is the wire framing of messages received from clients.
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Hub tracks connected sessions and the private channels they have joined,
// and implements events.Broadcaster on top of them.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}
}

// Ensure Hub implements events.Broadcaster
var _ events.Broadcaster = (*Hub)(nil)

// NewHub creates a new Hub.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		logger:  log.With(slog.String("component", "ws_hub")),
		clients: make(map[*Client]struct{}),
		rooms:   make(map[string]map[*Client]struct{}),
	}
}

// userRoom is the deterministic private channel name for a user.
func userRoom(userID uuid.UUID) string {
	return "user_" + userID.String()
}

// PublishGlobal implements events.Broadcaster. Every connected session
// receives the event; sessions whose send buffer is full are skipped.
func (h *Hub) PublishGlobal(ctx context.Context, event string, payload any) error {
	msg, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event, err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		c.trySend(msg)
	}
	return nil
}

// PublishToUser implements events.Broadcaster. Only sessions that have
// joined the user's private channel receive the event.
func (h *Hub) PublishToUser(
	ctx context.Context,
	userID uuid.UUID,
	event string,
	payload any,
) error {
	msg, err := json.Marshal(envelope{Event: event, Data: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event, err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[userRoom(userID)] {
		c.deliver(event, payload, msg)
	}
	return nil
}

// register adds a session to the hub.
func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	h.logger.Debug("client connected", "client_count", len(h.clients))
}

// unregister removes a session and its room memberships. Whatever the
// session missed while gone stays missed; rejoining starts fresh.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for room, members := range h.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	close(c.send)
	h.logger.Debug("client disconnected", "client_count", len(h.clients))
}

// join binds a session to a user's private channel.
func (h *Hub) join(c *Client, userID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := userRoom(userID)
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][c] = struct{}{}
	h.logger.Debug("client joined room", "room", room)
}

// upgrader performs the websocket handshake. The API is consumed from
// arbitrary origins, matching the permissive CORS policy of the rest of
// the server.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS upgrades an HTTP request to a websocket session and attaches it
// to the hub.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := newClient(hub, conn)
	hub.register(client)

	go client.writePump()
	go client.readPump()
}
