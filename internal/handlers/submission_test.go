package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-dataset-backend/internal/config"
	"food-dataset-backend/internal/repository"
	"food-dataset-backend/internal/services"
	"food-dataset-backend/internal/storage"
)

func newSubmissionRouter(t *testing.T) (chi.Router, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	store, err := storage.New(config.StorageConfig{Enabled: false})
	require.NoError(t, err)

	svc := services.NewSubmissionService(repository.NewSubmissionRepository(mock), store, nil)
	h := NewSubmissionHandler(svc)

	r := chi.NewRouter()
	r.Post("/api/v1/submissions", h.CreateSubmission)
	r.Get("/api/v1/submissions", h.ListSubmissions)
	r.Get("/api/v1/submissions/{id}", h.GetSubmission)
	r.Delete("/api/v1/submissions/{id}", h.DeleteSubmission)
	return r, mock
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestCreateSubmissionEndpoint(t *testing.T) {
	r, mock := newSubmissionRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO submissions`).
		WithArgs(anyArgs(11)...).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(12, time.Now()))
	mock.ExpectQuery(`INSERT INTO submission_images`).
		WithArgs(anyArgs(6)...).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO banku_fufu_meta`).
		WithArgs(anyArgs(7)...).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	body := `{
		"dishName": "Banku",
		"region": "VOLTA",
		"foodObtained": "Chop bar",
		"accuracyConfirmed": true,
		"soupContext": "Okro Soup/Stew",
		"pepper": ["Red Pepper"],
		"mainImages": [{"url": "https://cdn.example.com/banku.jpg", "filename": "banku.jpg"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success    bool   `json:"success"`
		Message    string `json:"message"`
		Submission struct {
			ID       int    `json:"id"`
			DishName string `json:"dishName"`
		} `json:"submission"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 12, resp.Submission.ID)
	assert.NotEmpty(t, resp.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSubmissionEndpointValidationError(t *testing.T) {
	r, _ := newSubmissionRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions",
		strings.NewReader(`{"dishName": "Banku"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "Missing required fields")
}

func TestCreateSubmissionEndpointMalformedBody(t *testing.T) {
	r, _ := newSubmissionRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSubmissionsEndpointPagination(t *testing.T) {
	r, mock := newSubmissionRouter(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM submissions`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .* FROM submissions`).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "dish_name", "no_person_in_image", "region", "town",
			"food_obtained", "food_obtained_other", "wants_acknowledgement",
			"acknowledged_name", "acknowledged_email", "acknowledged_phone",
			"accuracy_confirmed", "created_at",
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions?limit=10&offset=0", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success    bool              `json:"success"`
		Data       []json.RawMessage `json:"data"`
		Pagination struct {
			Total   int  `json:"total"`
			Limit   int  `json:"limit"`
			Offset  int  `json:"offset"`
			HasMore bool `json:"hasMore"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Equal(t, 10, resp.Pagination.Limit)
	assert.False(t, resp.Pagination.HasMore)
}

func TestGetSubmissionEndpointNotFound(t *testing.T) {
	r, mock := newSubmissionRouter(t)

	mock.ExpectQuery(`SELECT .* FROM submissions WHERE id`).
		WithArgs(404).
		WillReturnError(pgx.ErrNoRows)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions/404", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSubmissionEndpointBadID(t *testing.T) {
	r, _ := newSubmissionRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/submissions/abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
