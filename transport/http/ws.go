package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/cybermonitor-rd/sentinel/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Demo deployment serves a browser frontend from another origin
		return true
	},
}

// WSHandler upgrades realtime connections and hands them to the registry
type WSHandler struct {
	registry *realtime.Registry
	logger   zerolog.Logger
}

// NewWSHandler creates a new realtime endpoint handler
func NewWSHandler(registry *realtime.Registry, logger zerolog.Logger) *WSHandler {
	return &WSHandler{registry: registry, logger: logger}
}

// Serve accepts the upgrade and registers the socket. The registry is the
// sole writer until the client disconnects; the read loop here only
// detects disconnection.
func (h *WSHandler) Serve(c *gin.Context) {
	socket, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	conn := h.registry.Register(socket)
	defer h.registry.Deregister(conn)

	for {
		if _, _, err := socket.ReadMessage(); err != nil {
			return
		}
	}
}
