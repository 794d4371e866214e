// internal/websocket/handlers.go
// WebSocket connection handlers

package websocket

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleConnection upgrades an HTTP request to a WebSocket connection and
// registers it with the hub. No auth is required to watch: the schedule and
// awards are public; only the admin mutation endpoints are gated.
func HandleConnection(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("failed to upgrade connection: %v", err)
			return
		}

		client := NewClient(hub, conn)

		welcome := Message{Type: "welcome", Data: map[string]string{"message": "connected to srcomp live feed"}}
		if data, err := json.Marshal(welcome); err == nil {
			client.send <- data
		}

		client.Start()
	}
}

// Event types broadcast over the hub.
const (
	EventScheduleReloaded = "schedule.reloaded"
	EventDelayAdded       = "delay.added"
	EventAwardsUpdated    = "awards.updated"
)
