package handler

import (
	"net/http"
	"strings"

	"github.com/eniac-club/regdesk/internal/middleware"
	"github.com/eniac-club/regdesk/internal/service"
	ws "github.com/eniac-club/regdesk/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// MonitorHandler streams live registration counts to the admin panel.
type MonitorHandler struct {
	hub          *ws.Hub
	adminService *service.AdminService
	log          zerolog.Logger
	upgrader     websocket.Upgrader
}

func NewMonitorHandler(hub *ws.Hub, adminService *service.AdminService, log zerolog.Logger, allowedOrigins []string) *MonitorHandler {
	return &MonitorHandler{
		hub:          hub,
		adminService: adminService,
		log:          log.With().Str("component", "monitor_handler").Logger(),
		upgrader:     buildUpgrader(allowedOrigins),
	}
}

// Stream godoc
// WS /ws/v1/admin/monitor?token=...
// Upgrades to WebSocket, pushes the current count immediately, then pushes
// again on every registration and clear. The client may send ping actions.
func (h *MonitorHandler) Stream(c *gin.Context) {
	if middleware.GetClaims(c) == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	h.hub.Register(conn)
	defer h.hub.Unregister(conn)

	// Initial snapshot so the panel renders without waiting for an event.
	// Writes go through the hub, which serializes them against broadcasts.
	if err := h.hub.Send(conn, ws.CountResponse{Event: ws.EventCount, Count: h.adminService.Count()}); err != nil {
		return
	}

	for {
		var envelope ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &envelope); err != nil {
			return
		}

		switch envelope.Action {
		case ws.ActionPing:
			if err := h.hub.Send(conn, ws.PongResponse{Event: ws.EventPong}); err != nil {
				return
			}
		default:
			if err := h.hub.Send(conn, ws.ErrorResponse{Event: ws.EventError, Error: "unknown action"}); err != nil {
				return
			}
		}
	}
}
