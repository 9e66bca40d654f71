package services

import (
	"encoding/json"
	"sync"

	"moments-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSMessage represents a feed event sent to connected clients
type WSMessage struct {
	Type    string      `json:"type"`
	PhotoID string      `json:"photo_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// wsClient pairs a connection with a write lock; gorilla/websocket
// permits at most one concurrent writer per connection
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *wsClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.Close()
}

// WSHub manages WebSocket connections for the live feed
type WSHub struct {
	mu      sync.RWMutex
	clients map[string]*wsClient
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		clients: make(map[string]*wsClient),
	}
}

// Register registers a new WebSocket connection for a user
func (h *WSHub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Close existing connection if any
	if existing, exists := h.clients[userID]; exists {
		existing.close()
	}

	h.clients[userID] = &wsClient{conn: conn}

	log.Info().Str("user_id", userID).Msg("WebSocket connection registered")
}

// Unregister removes a user's WebSocket connection
func (h *WSHub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client, exists := h.clients[userID]; exists {
		client.close()
		delete(h.clients, userID)
		log.Info().Str("user_id", userID).Msg("WebSocket connection unregistered")
	}
}

// isOnline checks if a user has a live connection
func (h *WSHub) isOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, exists := h.clients[userID]
	return exists
}

// BroadcastPhotoUploaded notifies all connected clients about a new photo
func (h *WSHub) BroadcastPhotoUploaded(photo *models.Photo) {
	h.broadcast(WSMessage{
		Type:    "photo_uploaded",
		PhotoID: photo.ID,
		Data:    photo,
	})
}

// BroadcastPhotoDeleted notifies all connected clients about a removed photo
func (h *WSHub) BroadcastPhotoDeleted(photoID string) {
	h.broadcast(WSMessage{
		Type:    "photo_deleted",
		PhotoID: photoID,
	})
}

// broadcast sends a message to every connected client
func (h *WSHub) broadcast(message WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Error().Err(err).Str("type", message.Type).Msg("Failed to marshal feed event")
		return
	}

	h.mu.RLock()
	clients := make(map[string]*wsClient, len(h.clients))
	for userID, client := range h.clients {
		clients[userID] = client
	}
	h.mu.RUnlock()

	for userID, client := range clients {
		if err := client.write(data); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to send feed event")
			h.Unregister(userID)
		}
	}
}
