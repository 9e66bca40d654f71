package handlers

import (
	"net/http"

	"moments-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler streams live feed events to clients
type WebSocketHandler struct {
	hub    *services.WSHub
	tokens *services.TokenService
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *services.WSHub, tokens *services.TokenService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		tokens: tokens,
	}
}

// HandleWebSocket handles GET /ws
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Browsers cannot set headers on WebSocket requests, so the token
	// travels as a query parameter
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, "token required", http.StatusUnauthorized)
		return
	}

	userID, err := h.tokens.Verify(token)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID)

	log.Info().Str("user_id", userID).Msg("WebSocket connection established")

	// The feed is push-only; drain client frames until the connection drops
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
