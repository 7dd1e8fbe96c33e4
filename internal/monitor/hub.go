package monitor

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pipebots/pipelink/internal/logging"
)

const (
	// Time allowed to write an event to a client before it is dropped
	writeWait = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Watch clients connect from arbitrary hosts on the local network
	CheckOrigin: func(*http.Request) bool { return true },
}

// Hub fans events out to every connected watch client.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	closed  bool
}

// NewHub returns a hub with no clients.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

// Handler upgrades HTTP requests to WebSocket and registers the client.
// Clients only listen; their read side is drained and discarded.
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logging.Warn("WebSocket upgrade failed",
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			return
		}

		h.mu.Lock()
		if h.closed {
			h.mu.Unlock()
			_ = conn.Close()
			return
		}
		h.clients[conn] = struct{}{}
		n := len(h.clients)
		h.mu.Unlock()

		logging.Info("Watch client connected",
			zap.String("remote_addr", r.RemoteAddr),
			zap.Int("clients", n),
		)

		// Drain the read side so close frames and pings are processed.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					h.drop(conn)
					logging.Info("Watch client disconnected",
						zap.String("remote_addr", r.RemoteAddr),
					)
					return
				}
			}
		}()
	})
}

// Broadcast sends one event to every client. A client that cannot keep
// up is dropped; broadcast errors are never returned to the caller.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(ev); err != nil {
			delete(h.clients, conn)
			_ = conn.Close()
			logging.Warn("Dropping slow watch client", zap.Error(err))
		}
	}
}

// Clients reports the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for conn := range h.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "gateway shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		delete(h.clients, conn)
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		_ = conn.Close()
	}
}
