package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"food-dataset-backend/internal/models"
)

// WSMessage represents a message pushed to connected admin dashboards.
type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// WSHub manages admin dashboard WebSocket connections and broadcasts
// submission lifecycle events to all of them.
type WSHub struct {
	mu          sync.RWMutex
	connections map[int]*websocket.Conn
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		connections: make(map[int]*websocket.Conn),
	}
}

// Register registers a new WebSocket connection for an admin user
func (h *WSHub) Register(userID int, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Close existing connection if any
	if existing, exists := h.connections[userID]; exists {
		existing.Close()
	}
	h.connections[userID] = conn

	log.Info().Int("user_id", userID).Msg("Dashboard WebSocket registered")
}

// Unregister removes a WebSocket connection for an admin user
func (h *WSHub) Unregister(userID int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, exists := h.connections[userID]; exists {
		conn.Close()
		delete(h.connections, userID)
		log.Info().Int("user_id", userID).Msg("Dashboard WebSocket unregistered")
	}
}

// ConnectedCount returns the number of connected dashboards.
func (h *WSHub) ConnectedCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Broadcast sends a message to every connected dashboard. Dead connections
// are dropped.
func (h *WSHub) Broadcast(message WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal WebSocket message")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, conn := range h.connections {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn().Err(err).Int("user_id", userID).Msg("Dropping dead dashboard connection")
			conn.Close()
			delete(h.connections, userID)
		}
	}
}

// NotifySubmissionCreated announces a freshly persisted submission.
func (h *WSHub) NotifySubmissionCreated(sub *models.Submission) {
	h.Broadcast(WSMessage{Type: "submission_created", Data: sub})
}

// NotifySubmissionDeleted announces a deleted submission.
func (h *WSHub) NotifySubmissionDeleted(id int) {
	h.Broadcast(WSMessage{Type: "submission_deleted", Data: map[string]int{"id": id}})
}
