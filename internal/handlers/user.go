package handlers

import (
	"encoding/json"
	"net/http"

	"food-dataset-backend/internal/models"
	"food-dataset-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type userResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

// CreateUser handles POST /api/v1/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input services.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.CreateUser(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().
		Int("user_id", user.ID).
		Str("email", user.Email).
		Str("role", string(user.UserType)).
		Msg("User created")

	respondJSON(w, http.StatusCreated, userResponse{Success: true, User: user})
}

type listUsersResponse struct {
	Success bool           `json:"success"`
	Users   []*models.User `json:"users"`
}

// ListUsers handles GET /api/v1/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		respondServiceError(w, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	respondJSON(w, http.StatusOK, listUsersResponse{Success: true, Users: users})
}

type deleteUserRequest struct {
	ID int `json:"id"`
}

// DeleteUser handles POST /api/v1/users/delete
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	var req deleteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.userService.DeleteUser(r.Context(), req.ID); err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().Int("user_id", req.ID).Msg("User deleted")
	respondJSON(w, http.StatusOK, userResponse{Success: true, Message: "User deleted"})
}
