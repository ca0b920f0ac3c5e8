package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	id := Identity{UserID: "u1", Email: "a@b.c", Name: "Kim", Type: TypeGymOwner, IsAdmin: true}

	token, err := m.GenerateAccessToken(id)
	require.NoError(t, err)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.Identity())

	t.Run("Wrong secret", func(t *testing.T) {
		_, err := NewJWTManager("other", time.Hour).ParseAndValidate(token)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := NewJWTManager("secret", time.Hour)
		expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := expired.ParseAndValidate(token)
		assert.Error(t, err)
	})
}

func TestIdentityCan(t *testing.T) {
	assert.False(t, Identity{Type: TypeUser}.Can(CapManageBookings))
	assert.True(t, Identity{Type: TypeGymOwner}.Can(CapManageBookings))
	assert.False(t, Identity{Type: TypeGymOwner}.Can(CapManageUsers))
	assert.True(t, Identity{Type: TypeUser, IsAdmin: true}.Can(CapManageUsers))
}

func TestPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasherWithCost(4)
	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hash, "correct horse"))
	assert.Error(t, h.Compare(hash, "wrong"))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewJWTManager("secret", time.Hour)

	r := gin.New()
	r.GET("/me", AuthRequired(m), func(c *gin.Context) {
		c.String(http.StatusOK, GetUserID(c)+"/"+GetUserName(c))
	})
	r.GET("/owner", AuthRequired(m), RequireCapability(CapManageBookings), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	userToken, err := m.GenerateAccessToken(Identity{UserID: "u1", Name: "Kim", Type: TypeUser})
	require.NoError(t, err)
	ownerToken, err := m.GenerateAccessToken(Identity{UserID: "u2", Name: "Lee", Type: TypeGymOwner})
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		status int
		body   string
	}{
		{name: "Missing header", path: "/me", status: http.StatusUnauthorized},
		{name: "Bad scheme", path: "/me", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "Bad token", path: "/me", header: "Bearer garbage", status: http.StatusUnauthorized},
		{name: "Valid", path: "/me", header: "Bearer " + userToken, status: http.StatusOK, body: "u1/Kim"},
		{name: "Forbidden", path: "/owner", header: "Bearer " + userToken, status: http.StatusForbidden},
		{name: "Owner", path: "/owner", header: "Bearer " + ownerToken, status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}
