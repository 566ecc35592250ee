package handlers

import (
	"encoding/json"
	"net/http"

	"food-dataset-backend/internal/models"
	"food-dataset-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles login and password-reset HTTP requests
type AuthHandler struct {
	userService  *services.UserService
	resetService *services.ResetService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *services.UserService, resetService *services.ResetService) *AuthHandler {
	return &AuthHandler{userService: userService, resetService: resetService}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().Int("user_id", user.ID).Msg("User logged in")
	respondJSON(w, http.StatusOK, loginResponse{Success: true, Token: token, User: user})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ForgotPassword handles POST /api/v1/auth/forgot-password. The response
// never reveals whether the email is registered.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	message, err := h.resetService.RequestReset(r.Context(), req.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Success: true, Message: message})
}

type validateTokenRequest struct {
	Token string `json:"token"`
}

type validateTokenResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
}

// ValidateResetToken handles POST /api/v1/auth/validate-reset-token
func (h *AuthHandler) ValidateResetToken(w http.ResponseWriter, r *http.Request) {
	var req validateTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.resetService.ValidateToken(r.Context(), req.Token)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, validateTokenResponse{Success: true, Email: user.Email})
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword handles POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.resetService.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Password has been reset"})
}
