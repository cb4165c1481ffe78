package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/civicmap/civicmap-api/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the map explorer is served from other origins during development
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans report events out to connected map explorer clients
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
}

// NewHub creates a hub; Run must be started on its own goroutine
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// Run owns the client set; all membership changes and writes go through here
func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
		case msg := <-h.broadcast:
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					zap.S().Debugw("dropping live feed client", "error", err)
					delete(h.clients, conn)
					conn.Close()
				}
			}
		}
	}
}

// ServeWS upgrades the connection and keeps it registered until the client goes away
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Warnw("websocket upgrade failed", "error", err)
		return
	}
	h.register <- conn

	// clients never send application messages; the read loop only detects disconnects
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.unregister <- conn
				return
			}
		}
	}()
}

// BroadcastReport pushes a report event to every connected client. A full broadcast
// buffer drops the event rather than blocking the request path.
func (h *Hub) BroadcastReport(event string, report models.Report) {
	msg, err := json.Marshal(map[string]interface{}{
		"event":  event,
		"report": report.Summary(),
	})
	if err != nil {
		zap.S().Warnw("failed to marshal live feed event", "event", event, "error", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		zap.S().Debugw("live feed buffer full, dropping event", "event", event)
	}
}
