package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/court-reservation/internal/auth"
	"github.com/nekogravitycat/court-reservation/internal/pkg/response"
	"github.com/nekogravitycat/court-reservation/internal/user"
)

func newTestRouter(t *testing.T) (*gin.Engine, user.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := user.NewService(user.NewMemoryRepository(), auth.NewBcryptPasswordHasherWithCost(4), zerolog.Nop())
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc, jwtManager),
		auth.AuthRequired(jwtManager), auth.RequireCapability(auth.CapManageUsers))
	return r, svc
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/v1/auth/login", "", LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	assert.EqualValues(t, 3600, resp.ExpiresIn)
	return resp.AccessToken
}

func TestUserRoutes(t *testing.T) {
	r, svc := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/v1/auth/register", "", RegisterRequest{
		Email: "kim@example.com", Password: "password1", Name: "Kim Cheolsu", Phone: "010-0000-0000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("Register duplicate", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/v1/auth/register", "", RegisterRequest{
			Email: "kim@example.com", Password: "password1", Name: "Again",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Register invalid body", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/v1/auth/register", "", gin.H{"email": "not-an-email"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Login wrong password", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/v1/auth/login", "", LoginRequest{Email: "kim@example.com", Password: "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	token := login(t, r, "kim@example.com", "password1")

	t.Run("Me", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/v1/me", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp MeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Kim Cheolsu", resp.User.Name)
		assert.Equal(t, auth.TypeUser, resp.User.Type)
	})

	t.Run("Admin routes forbidden for users", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/v1/admin/users", token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Admin routes", func(t *testing.T) {
		require.NoError(t, svc.EnsureAdmin(t.Context(), "admin@example.com", "adminpass"))
		adminToken := login(t, r, "admin@example.com", "adminpass")

		w := doJSON(r, http.MethodGet, "/v1/admin/users?type=USER", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var page response.PageResponse[UserResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		require.Equal(t, 1, page.Total)
		target := page.Items[0].ID

		owner := auth.TypeGymOwner
		w = doJSON(r, http.MethodPatch, "/v1/admin/users/"+target, adminToken, UpdateUserRequest{Type: &owner})
		require.Equal(t, http.StatusOK, w.Code)
		var resp MeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, auth.TypeGymOwner, resp.User.Type)

		w = doJSON(r, http.MethodGet, "/v1/admin/users/missing", adminToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
