package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"food-dataset-backend/internal/models"
	"food-dataset-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// SubmissionHandler handles submission-related HTTP requests
type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

type createSubmissionResponse struct {
	Success    bool               `json:"success"`
	Submission *models.Submission `json:"submission"`
	Message    string             `json:"message"`
}

// CreateSubmission handles POST /api/v1/submissions
func (h *SubmissionHandler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var input services.CreateSubmissionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	submission, err := h.submissionService.Create(r.Context(), input)
	if err != nil {
		log.Error().Err(err).Str("dish", input.DishName).Msg("Failed to create submission")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Int("submission_id", submission.ID).
		Str("dish", string(submission.DishName)).
		Str("region", submission.Region).
		Msg("Submission created")

	respondJSON(w, http.StatusCreated, createSubmissionResponse{
		Success:    true,
		Submission: submission,
		Message:    "Submission received. Thank you for contributing!",
	})
}

type paginationInfo struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

type listSubmissionsResponse struct {
	Success    bool                 `json:"success"`
	Data       []*models.Submission `json:"data"`
	Pagination paginationInfo       `json:"pagination"`
}

// ListSubmissions handles GET /api/v1/submissions
func (h *SubmissionHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	input := services.ListSubmissionsInput{
		DishName: query.Get("dishName"),
		Region:   query.Get("region"),
		Search:   query.Get("search"),
	}
	if raw := query.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			input.Limit = limit
		}
	}
	if raw := query.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil {
			input.Offset = offset
		}
	}

	page, err := h.submissionService.List(r.Context(), input)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list submissions")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, listSubmissionsResponse{
		Success: true,
		Data:    page.Data,
		Pagination: paginationInfo{
			Total:   page.Total,
			Limit:   page.Limit,
			Offset:  page.Offset,
			HasMore: page.Offset+len(page.Data) < page.Total,
		},
	})
}

type submissionResponse struct {
	Success    bool               `json:"success"`
	Submission *models.Submission `json:"submission"`
}

// GetSubmission handles GET /api/v1/submissions/{id}
func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "Invalid submission id", http.StatusBadRequest)
		return
	}

	submission, err := h.submissionService.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, submissionResponse{Success: true, Submission: submission})
}

// DeleteSubmission handles DELETE /api/v1/submissions/{id}
func (h *SubmissionHandler) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "Invalid submission id", http.StatusBadRequest)
		return
	}

	submission, err := h.submissionService.Delete(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	log.Info().Int("submission_id", id).Msg("Submission deleted")
	respondJSON(w, http.StatusOK, submissionResponse{Success: true, Submission: submission})
}
