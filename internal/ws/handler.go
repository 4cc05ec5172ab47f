package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin is checked by the gin middleware before upgrade
	},
}

// Client represents a connected WebSocket client
type Client struct {
	conn       *websocket.Conn
	playerID   string
	matchToken string
	send       chan []byte
}

// Hub maintains the set of active clients grouped by match.
type Hub struct {
	clients    map[string]*Client            // playerID -> Client
	matchRooms map[string]map[string]*Client // matchToken -> playerID -> Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		matchRooms: make(map[string]map[string]*Client),
	}
}

// add registers a client, replacing any previous connection for the player.
func (h *Hub) add(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, exists := h.clients[client.playerID]; exists {
		log.Printf("[WS] player %s reconnecting - closing old connection", client.playerID)
		if old.conn != nil {
			old.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replaced by new connection"),
				time.Now().Add(5*time.Second))
			old.conn.Close()
		}
		close(old.send)
		delete(h.clients, client.playerID)
		if room, ok := h.matchRooms[old.matchToken]; ok {
			delete(room, client.playerID)
		}
	}

	h.clients[client.playerID] = client
	if _, ok := h.matchRooms[client.matchToken]; !ok {
		h.matchRooms[client.matchToken] = make(map[string]*Client)
	}
	h.matchRooms[client.matchToken][client.playerID] = client
}

// remove unregisters a client and reports whether it was still the current
// connection for the player. A stale client that was already replaced by a
// reconnect returns false, so its teardown must not count as a disconnect.
func (h *Hub) remove(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	current := false
	if c, ok := h.clients[client.playerID]; ok && c == client {
		delete(h.clients, client.playerID)
		close(client.send)
		current = true
	}
	if room, ok := h.matchRooms[client.matchToken]; ok {
		if room[client.playerID] == client {
			delete(room, client.playerID)
		}
		if len(room) == 0 {
			delete(h.matchRooms, client.matchToken)
		}
	}
	return current
}

// BroadcastToMatch sends a message to all players in a match.
func (h *Hub) BroadcastToMatch(matchToken string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if room, exists := h.matchRooms[matchToken]; exists {
		for _, client := range room {
			select {
			case client.send <- data:
			default:
				log.Printf("[WS] send buffer full for player %s, dropping message", client.playerID)
			}
		}
	}
}

// SendToPlayer sends a message to a specific player.
func (h *Hub) SendToPlayer(playerID string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if client, exists := h.clients[playerID]; exists {
		select {
		case client.send <- data:
		default:
			log.Printf("[WS] SendToPlayer dropped message for player %s (buffer full)", playerID)
		}
	}
}

// WSMessage is the envelope for client commands.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] write error for player %s: %v", c.playerID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
	select {
	case c.send <- data:
	default:
	}
}
