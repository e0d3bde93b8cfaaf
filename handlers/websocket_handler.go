package handlers

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/Dosada05/tourney/realtime"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler accepts browser connections from allowedOrigins; "*"
// allows any origin.
func NewWebSocketHandler(hub *realtime.Hub, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	anyOrigin := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return anyOrigin || origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
		logger: logger,
	}
}

// ServeWs godoc
// @Summary      Watch a tournament
// @Description  Upgrades to a websocket that receives BRACKET_UPDATED and TOURNAMENT_DELETED messages.
// @Tags         realtime
// @Param        name  path  string  true  "Tournament name"
// @Success      101
// @Router       /ws/tournaments/{name} [get]
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	name, err := getNameFromURL(r, "name")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		h.logger.Warn("websocket upgrade failed", slog.String("tournament", name), slog.Any("error", err))
		return
	}

	if !realtime.NewClient(h.hub, conn, name).Serve() {
		h.logger.Warn("websocket hub stopped, connection dropped", slog.String("tournament", name))
		return
	}
	h.logger.Debug("websocket client connected", slog.String("tournament", name))
}
