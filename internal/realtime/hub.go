package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

type Client struct {
	ID     string
	UserID uuid.UUID
	Conn   *WebSocketConn
	Send   chan []byte
}

// Event is the wire envelope pushed to websocket clients.
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub maps a user to their single live websocket client.
// Registering a second client for the same user replaces the first
// (last connection wins). Disconnects report the client, not the user,
// so unregister matches by client identity.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]*Client),
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.mu.Lock()
	if old, ok := h.clients[client.UserID]; ok && old != client {
		close(old.Send)
	}
	h.clients[client.UserID] = client
	h.mu.Unlock()
	log.Printf("Client registered: %s (UserID: %s)", client.ID, client.UserID)
}

func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	// only remove if this exact client still owns the slot; a newer
	// connection for the same user must survive a stale disconnect
	if cur, ok := h.clients[client.UserID]; ok && cur == client {
		delete(h.clients, client.UserID)
		close(cur.Send)
		log.Printf("Client unregistered: %s", client.ID)
	}
	h.mu.Unlock()
}

// SendToUser pushes the named event to the user's client, if connected.
// Best effort: unknown users are a no-op, a full send buffer is skipped.
func (h *Hub) SendToUser(userID uuid.UUID, event string, data interface{}) {
	payload, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		log.Printf("Error marshaling event %s: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[userID]
	if !ok {
		return
	}

	select {
	case client.Send <- payload:
	default:
		// kalau penuh, skip (jangan block)
	}
}

// IsOnline reports whether the user currently has a registered client.
func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
