package handlers

import (
	"net/http"

	"food-dataset-backend/internal/models"
	"food-dataset-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Admin portal and API are served from different origins
	},
}

// WebSocketHandler handles the admin live-feed WebSocket
type WebSocketHandler struct {
	hub         *services.WSHub
	userService *services.UserService
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *services.WSHub, userService *services.UserService) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, userService: userService}
}

// HandleWebSocket handles GET /ws/admin. The token arrives as a query
// parameter because browsers cannot set headers on WebSocket upgrades.
// Only admin accounts may subscribe to the live feed.
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, "token required", http.StatusUnauthorized)
		return
	}

	userID, role, err := h.userService.ValidateJWT(token)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if role != models.UserTypeAdmin {
		respondError(w, "Admin access required", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID)

	log.Info().Int("user_id", userID).Msg("Admin live feed connected")

	// The feed is push-only. Reading keeps the connection alive and
	// detects the close from the client side.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Int("user_id", userID).Msg("WebSocket error")
			}
			break
		}
	}
}
