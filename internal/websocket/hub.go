// internal/websocket/hub.go
// WebSocket hub manages client connections and message broadcasting

package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains active websocket connections and broadcasts competition
// events to all of them. Unlike a multi-tenant system, there is exactly one
// competition per server, so every connected client is interested in every
// broadcast -- there is no per-tournament subscription set to maintain.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message

	logger *log.Logger

	mu sync.RWMutex
}

// Message represents a WebSocket message announcing a change to the
// competition state: a new delay, a reload from disk, an awards override.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// NewHub creates a new WebSocket hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		logger:     logger,
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
	h.logger.Printf("client connected (%d total)", len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeClient(client)
	client.close()
	h.logger.Printf("client disconnected (%d total)", len(h.clients))
}

func (h *Hub) removeClient(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
	}
}

func (h *Hub) broadcastMessage(message *Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Printf("failed to marshal message: %v", err)
		return
	}

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.removeClient(client)
			client.close()
		}
	}
}

// BroadcastEvent announces a competition-state change to every connected
// client, e.g. "delay.added" or "schedule.reloaded".
func (h *Hub) BroadcastEvent(eventType string, data interface{}) {
	h.broadcast <- &Message{Type: eventType, Data: data}
}
