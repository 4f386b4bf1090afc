package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans analysis progress events out to the browser sessions that asked for them
type Hub struct {
	// sessionID -> open connections (one per tab)
	sessions map[string]map[*Connection]struct{}

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	quit       chan struct{}
	closeOnce  sync.Once
}

// Connection represents a WebSocket connection
type Connection struct {
	SessionID string
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	SessionID string
	Message   *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		sessions:   make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		quit:       make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.sessions[conn.SessionID] == nil {
				h.sessions[conn.SessionID] = make(map[*Connection]struct{})
			}
			h.sessions[conn.SessionID][conn] = struct{}{}
			h.mu.Unlock()
			log.Printf("[WS] Session %s connected", conn.SessionID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.sessions[conn.SessionID]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.sessions, conn.SessionID)
					}
					log.Printf("[WS] Session %s disconnected", conn.SessionID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				log.Printf("[WS] Failed to encode %s: %v", msg.Message.Type, err)
				continue
			}
			h.mu.RLock()
			for conn := range h.sessions[msg.SessionID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case <-h.quit:
			h.mu.Lock()
			for id, conns := range h.sessions {
				for conn := range conns {
					close(conn.Send)
				}
				delete(h.sessions, id)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.quit:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.quit:
	}
}

// Close disconnects every session and stops the hub
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.quit) })
}

// SessionCount returns the number of open connections for a session
func (h *Hub) SessionCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

// BroadcastToSession sends a message to every connection of a session (implements service.Broadcaster)
func (h *Hub) BroadcastToSession(sessionID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[WS] Failed to encode %s payload: %v", msgType, err)
		return
	}
	msg := &BroadcastMessage{
		SessionID: sessionID,
		Message: &Message{
			Type:    msgType,
			Payload: data,
		},
	}
	select {
	case h.broadcast <- msg:
	case <-h.quit:
	default:
		log.Printf("[WS] Broadcast queue full, dropping %s for session %s", msgType, sessionID)
	}
}
