package handlers

import (
	"net/http"

	"food-dataset-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// DashboardHandler handles admin dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

type dashboardResponse struct {
	Success bool                     `json:"success"`
	Stats   *services.DashboardStats `json:"stats"`
}

// GetStats handles GET /api/v1/dashboard
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load dashboard stats")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dashboardResponse{Success: true, Stats: stats})
}
