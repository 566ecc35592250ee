package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-dataset-backend/internal/models"
	"food-dataset-backend/internal/services"
)

func protectedRouter(t *testing.T, svc *services.UserService) http.Handler {
	t.Helper()
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		assert.Positive(t, id)
		w.WriteHeader(http.StatusOK)
	})
	return RequireAuth(svc)(RequireAdmin(final))
}

func TestRequireAuthMissingHeader(t *testing.T) {
	svc := services.NewUserService(nil, "secret")
	handler := protectedRouter(t, svc)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	svc := services.NewUserService(nil, "secret")
	handler := protectedRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	svc := services.NewUserService(nil, "secret")
	handler := protectedRouter(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminRejectsRegularUsers(t *testing.T) {
	svc := services.NewUserService(nil, "secret")
	handler := protectedRouter(t, svc)

	token, err := svc.GenerateJWT(3, models.UserTypeUser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminAllowsAdmins(t *testing.T) {
	svc := services.NewUserService(nil, "secret")
	handler := protectedRouter(t, svc)

	token, err := svc.GenerateJWT(3, models.UserTypeAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
