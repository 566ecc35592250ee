package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"food-dataset-backend/internal/services"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// respondJSON writes a JSON body with the given status code.
func respondJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Success: false, Error: message})
}

// respondServiceError maps service error kinds onto HTTP status codes.
// Internal errors hide their detail behind a generic message.
func respondServiceError(w http.ResponseWriter, err error) {
	var appErr *services.AppError
	if !errors.As(err, &appErr) {
		respondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	switch appErr.Kind {
	case services.KindInvalid:
		respondError(w, appErr.Message, http.StatusBadRequest)
	case services.KindNotFound:
		respondError(w, appErr.Message, http.StatusNotFound)
	case services.KindUnauthorized:
		respondError(w, appErr.Message, http.StatusUnauthorized)
	default:
		respondError(w, "Internal server error", http.StatusInternalServerError)
	}
}
