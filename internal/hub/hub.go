// Package hub fans session events out to connected WebSocket clients so
// an interviewer dashboard can follow the interview live.
package hub

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Each broadcast write must complete within this window; a peer that
// cannot drain its connection in time is dropped.
const defaultWriteTimeout = 5 * time.Second

// Event is one session notification pushed to every connected client.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type Hub struct {
	logger       *zap.Logger
	upgrader     websocket.Upgrader
	writeTimeout time.Duration

	mu          sync.Mutex
	connections map[*websocket.Conn]bool
}

func New(logger *zap.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		writeTimeout: defaultWriteTimeout,
		connections:  make(map[*websocket.Conn]bool),
	}
}

// HandleWS upgrades the request and registers the connection. The read
// loop exists only to notice the peer going away.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.connections[conn] = true
	h.mu.Unlock()

	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Notify sends the event to all connected clients. A connection whose
// write fails or cannot complete within the write timeout is dropped, so
// one stalled peer never blocks the caller indefinitely.
func (h *Hub) Notify(eventType string, payload interface{}) {
	event := Event{Type: eventType, Payload: payload}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.connections))
	for conn := range h.connections {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Debug("dropping websocket client", zap.Error(err))
			h.remove(conn)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.connections, conn)
	h.mu.Unlock()
	conn.Close()
}
