package fanout

import (
	"net/http"

	"github.com/architeacher/svc-web-analyzer/internal/config"
	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
	"github.com/gorilla/websocket"
)

// Handler upgrades incoming HTTP requests to websocket connections and
// registers each one with the Hub (spec.md §4.8).
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	cfg      config.FanoutConfig
	logger   infrastructure.Logger
}

func NewHandler(hub *Hub, cfg config.FanoutConfig, logger infrastructure.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:   cfg.ReadBufferSize,
			WriteBufferSize:  cfg.WriteBufferSize,
			HandshakeTimeout: cfg.HandshakeTimeout,
			CheckOrigin:      func(r *http.Request) bool { return true },
		},
		cfg:    cfg,
		logger: logger,
	}
}

// ServeWS upgrades the connection at GET /ws and registers the resulting
// client with the hub. Mount at the HTTP server's router.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("fanout: websocket upgrade failed")
		return
	}

	client := NewClient(h.hub, conn, h.cfg, h.logger)
	h.hub.Register <- client
	client.Start()
}
