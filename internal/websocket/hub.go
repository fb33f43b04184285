package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Hub fans registration-count updates out to every connected admin monitor.
// It implements the pipeline's Notifier capability.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
	log   zerolog.Logger
}

// NewHub creates an empty Hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]struct{}),
		log:   log.With().Str("component", "monitor_hub").Logger(),
	}
}

// Register adds a monitor connection to the broadcast set.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	h.log.Debug().Int("monitors", h.Size()).Msg("Monitor connected")
}

// Unregister removes a monitor connection. Safe to call twice.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}

// Size returns the number of connected monitors.
func (h *Hub) Size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Send writes a payload to a single connection. All writes to registered
// connections go through the hub mutex: gorilla conns do not allow
// concurrent writers.
func (h *Hub) Send(conn *websocket.Conn, v interface{}) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return WriteTyped(conn, v)
}

// NotifyCount broadcasts the current registration count. Connections that
// fail the write are dropped from the set; their reader goroutine cleans up
// the rest.
func (h *Hub) NotifyCount(count int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	payload := CountResponse{Event: EventCount, Count: count}
	for conn := range h.conns {
		if err := WriteTyped(conn, payload); err != nil {
			h.log.Debug().Err(err).Msg("Dropping dead monitor connection")
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// WriteTyped sends a strongly-typed payload over the WebSocket.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(v)
}

// WriteError sends a typed ErrorResponse over the WebSocket.
func WriteError(conn *websocket.Conn, errMsg string) error {
	return WriteTyped(conn, ErrorResponse{Event: EventError, Error: errMsg})
}

// ReadJSON reads and decodes a message into the provided structure.
// It sets a read deadline.
func ReadJSON(conn *websocket.Conn, v interface{}) error {
	conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
	return conn.ReadJSON(v)
}
