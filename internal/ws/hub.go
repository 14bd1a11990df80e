package ws

import (
	"log/slog"
	"sync"

	"github.com/phrasebingo/phrasebingo-go/internal/model"
)

// Hub tracks which connections belong to which room so broadcasts can
// be scoped. Delivery is fire-and-forget: a client whose send buffer
// is full misses the message.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[model.RoomID]map[*Client]bool
	logger *slog.Logger
}

// NewHub creates a new Hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[model.RoomID]map[*Client]bool),
		logger: logger.With(slog.String("component", "ws-hub")),
	}
}

// Join adds a client to a room's broadcast set, removing it from any
// room it was in before
func (h *Hub) Join(client *Client, roomID model.RoomID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(client)

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
	client.roomID = roomID

	h.logger.Info("client joined room",
		slog.String("room_id", string(roomID)),
		slog.Int("room_clients", len(h.rooms[roomID])))
}

// Leave removes a client from its room, if any
func (h *Hub) Leave(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

// removeLocked drops the client from its current room. Caller holds mu.
func (h *Hub) removeLocked(client *Client) {
	if client.roomID == "" {
		return
	}
	clients, ok := h.rooms[client.roomID]
	if ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, client.roomID)
		}
	}
	client.roomID = ""
}

// Broadcast sends a message to every client in the room
func (h *Hub) Broadcast(roomID model.RoomID, message []byte) {
	h.broadcast(roomID, message, nil)
}

// BroadcastExcept sends a message to every client in the room other
// than the sender
func (h *Hub) BroadcastExcept(roomID model.RoomID, sender *Client, message []byte) {
	h.broadcast(roomID, message, sender)
}

// broadcast delivers under the read lock: a client is only removed
// (and its send channel closed) under the write lock, so no send can
// hit a closed channel. Sends are non-blocking, so holding the lock
// here is cheap.
func (h *Hub) broadcast(roomID model.RoomID, message []byte, skip *Client) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[roomID] {
		if client == skip {
			continue
		}
		select {
		case client.send <- message:
		default:
			h.logger.Warn("ws message dropped - client buffer full",
				slog.String("room_id", string(roomID)),
				slog.String("player", string(client.name)))
		}
	}
}

// ClientCount returns the number of clients in a room
func (h *Hub) ClientCount(roomID model.RoomID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}
