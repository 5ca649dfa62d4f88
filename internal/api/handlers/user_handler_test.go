package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/design-platform/design-platform-backend/internal/repository"
	"github.com/design-platform/design-platform-backend/internal/service"
	"github.com/design-platform/design-platform-backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCurrentUserEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token, _ := ts.register(t, "Casey", types.RoleClient)

	t.Run("updates profile name", func(t *testing.T) {
		w := ts.do(t, http.MethodPut, "/api/users/me", token, gin.H{"name": "Casey Lee"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "Casey Lee")
	})

	t.Run("password change takes effect on login", func(t *testing.T) {
		w := ts.do(t, http.MethodPut, "/api/users/me", token, gin.H{"password": "brand-new-secret"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = ts.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
			"email":    "casey@test.example",
			"password": "password123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		w = ts.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
			"email":    "casey@test.example",
			"password": "brand-new-secret",
		})
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("short password rejected", func(t *testing.T) {
		w := ts.do(t, http.MethodPut, "/api/users/me", token, gin.H{"password": "short"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// stubUserService lets handler tests force a specific service error.
type stubUserService struct {
	err error
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (*repository.User, error) {
	return nil, s.err
}

func (s *stubUserService) Update(ctx context.Context, id string, name, password *string) (*repository.User, error) {
	return nil, s.err
}

func (s *stubUserService) ListDesigners(ctx context.Context) ([]*repository.User, error) {
	return nil, s.err
}

func TestUpdateCurrentUserErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &UserHandler{userService: &stubUserService{err: service.ErrUserNotFound}}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPut, "/api/users/me", strings.NewReader(`{"name":"Zed"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user", &repository.User{ID: "gone", Role: types.RoleClient})

	h.UpdateCurrentUser(c)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
}
