// Package websocket pushes live chat and match events to connected
// clients.
package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/radu-bors/Clique-backend/auth"
)

type Manager struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

type Client struct {
	conn    *websocket.Conn
	userID  string
	send    chan []byte
	manager *Manager
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *Manager) Start() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = true
			m.mu.Unlock()
			log.Printf("websocket client registered, total %d", len(m.clients))

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				close(client.send)
			}
			m.mu.Unlock()
			log.Printf("websocket client unregistered, total %d", len(m.clients))

		case message := <-m.broadcast:
			m.mu.RLock()
			for client := range m.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(m.clients, client)
				}
			}
			m.mu.RUnlock()
		}
	}
}

func (m *Manager) broadcastFrame(frameType string, payload map[string]interface{}) {
	msg, err := json.Marshal(map[string]interface{}{
		"type":    frameType,
		"payload": payload,
	})
	if err != nil {
		log.Printf("websocket marshal error: %v", err)
		return
	}
	m.broadcast <- msg
}

// BroadcastChatMessage announces a new chat message.
func (m *Manager) BroadcastChatMessage(payload map[string]interface{}) {
	m.broadcastFrame("chat_message", payload)
}

// BroadcastMatchAccepted announces that an event creator accepted a
// participant.
func (m *Manager) BroadcastMatchAccepted(payload map[string]interface{}) {
	m.broadcastFrame("match_accepted", payload)
}

func (m *Manager) ConnectedClients() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Handler upgrades the connection after validating the session credentials
// passed as userId and token query parameters.
func Handler(manager *Manager, gate *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.URL.Query().Get("userId")
		token := r.URL.Query().Get("token")
		if userIDStr == "" || token == "" {
			http.Error(w, "Session credentials required", http.StatusUnauthorized)
			return
		}

		userID, err := primitive.ObjectIDFromHex(userIDStr)
		if err != nil {
			http.Error(w, "Invalid user id", http.StatusUnauthorized)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if !gate.IsSessionValid(ctx, userID, token) {
			http.Error(w, "Invalid session", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}

		client := &Client{
			conn:    conn,
			userID:  userIDStr,
			send:    make(chan []byte, 256),
			manager: manager,
		}

		manager.register <- client

		welcome, _ := json.Marshal(map[string]interface{}{
			"type": "connected",
			"payload": map[string]interface{}{
				"userId": userIDStr,
				"time":   time.Now().Unix(),
			},
		})
		client.send <- welcome

		go client.writePump()
		go client.readPump()
	}
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket read error: %v", err)
			}
			break
		}

		var data map[string]interface{}
		if err := json.Unmarshal(message, &data); err != nil {
			continue
		}

		switch data["type"] {
		case "typing_start", "typing_end":
			c.relayTyping(data)
		case "ping":
			c.sendPong()
		}
	}
}

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

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
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

func (c *Client) relayTyping(data map[string]interface{}) {
	payload, ok := data["payload"].(map[string]interface{})
	if !ok {
		return
	}

	msg, err := json.Marshal(map[string]interface{}{
		"type": data["type"],
		"payload": map[string]interface{}{
			"chatId":    payload["chatId"],
			"userId":    c.userID,
			"timestamp": time.Now().Unix(),
		},
	})
	if err != nil {
		return
	}
	c.manager.broadcast <- msg
}

func (c *Client) sendPong() {
	msg, err := json.Marshal(map[string]interface{}{
		"type": "pong",
		"payload": map[string]interface{}{
			"time": time.Now().Unix(),
		},
	})
	if err != nil {
		return
	}
	c.send <- msg
}
