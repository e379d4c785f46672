package ws

import (
	"encoding/json"
	"sync"

	"github.com/imran12mia/hopweb/internal/logger"
)

// Hub fans published notices out to every connected client.
type Hub struct {
	mu        sync.RWMutex
	clients   map[*Client]struct{}
	broadcast chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*Client]struct{}),
		broadcast: make(chan []byte, 64),
	}
}

// Run consumes the broadcast queue. Call in its own goroutine.
func (h *Hub) Run() {
	for msg := range h.broadcast {
		h.mu.RLock()
		for c := range h.clients {
			select {
			case c.send <- msg:
			default:
				// slow consumer, drop the message rather than block the hub
			}
		}
		h.mu.RUnlock()
	}
}

// Publish queues v for delivery to all clients.
func (h *Hub) Publish(v any) {
	msg, err := json.Marshal(v)
	if err != nil {
		logger.Error("ws publish marshal failed", "error", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		logger.Warn("ws broadcast queue full, dropping message")
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
