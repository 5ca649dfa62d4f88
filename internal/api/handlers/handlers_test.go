package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/design-platform/design-platform-backend/internal/api/middleware"
	"github.com/design-platform/design-platform-backend/internal/config"
	"github.com/design-platform/design-platform-backend/internal/notification"
	"github.com/design-platform/design-platform-backend/internal/repository"
	"github.com/design-platform/design-platform-backend/internal/service"
	"github.com/design-platform/design-platform-backend/internal/storage"
	"github.com/design-platform/design-platform-backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
	repos  *repository.Repositories
	auth   service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repository.NewInMemoryRepositories()
	store := storage.NewMemoryStore()
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		JWTExpiry:     1,
		RefreshExpiry: 1,
		FrontendURL:   "http://localhost:3000",
	}
	notifSvc := notification.NewService(repos.NotificationRepo)

	services := service.NewServices(&service.ServiceDeps{
		Config:   cfg,
		Repos:    repos,
		Store:    store,
		NotifSvc: notifSvc,
	})
	h := NewHandlers(services)

	router := gin.New()
	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)
	auth.POST("/logout", h.Auth.Logout)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(services.Auth, services.User))
	{
		protected.GET("/users/me", h.User.GetCurrentUser)
		protected.PUT("/users/me", h.User.UpdateCurrentUser)
		protected.GET("/users/designers", h.User.ListDesigners)

		protected.GET("/projects", h.Project.List)
		protected.POST("/projects", h.Project.Create)
		protected.GET("/projects/:id", h.Project.Get)
		protected.PUT("/projects/:id", h.Project.Update)
		protected.DELETE("/projects/:id", h.Project.Delete)
		protected.POST("/projects/:id/assign", h.Project.AssignDesigner)
		protected.DELETE("/projects/:id/assign", h.Project.UnassignDesigner)

		protected.GET("/projects/:id/files", h.File.List)
		protected.POST("/projects/:id/files", h.File.Upload)
		protected.GET("/projects/:id/files/:fileId", h.File.Download)
		protected.DELETE("/projects/:id/files/:fileId", h.File.Delete)

		protected.GET("/notifications", h.Notification.List)
		protected.GET("/notifications/count", h.Notification.Count)
		protected.PUT("/notifications/:id/read", h.Notification.MarkRead)
		protected.PUT("/notifications/read-all", h.Notification.MarkAllRead)
		protected.DELETE("/notifications/:id", h.Notification.Delete)
	}

	return &testServer{router: router, repos: repos, auth: services.Auth}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// register creates an account through the API and returns its access token
// plus the decoded user ID.
func (ts *testServer) register(t *testing.T, name, role string) (token, userID string) {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    strings.ToLower(name) + "@test.example",
		"password": "password123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken, resp.User.ID
}

func (ts *testServer) createProject(t *testing.T, token, title string) string {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", title))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/projects", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func TestRegisterEndpoint(t *testing.T) {
	ts := newTestServer(t)

	t.Run("creates account and returns tokens", func(t *testing.T) {
		token, userID := ts.register(t, "Ana", types.RoleClient)
		assert.NotEmpty(t, token)
		assert.NotEmpty(t, userID)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
			"name":     "Eve",
			"email":    "eve@test.example",
			"password": "password123",
			"role":     "admin",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
			"name":     "Ana Again",
			"email":    "ana@test.example",
			"password": "password123",
			"role":     types.RoleClient,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "Ana", types.RoleClient)

	w := ts.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ana@test.example",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ana@test.example",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	ts := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/users/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/users/me", "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token for unknown user", func(t *testing.T) {
		claims := jwt.MapClaims{
			"sub": "no-such-user",
			"exp": time.Now().Add(time.Hour).Unix(),
			"iat": time.Now().Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		w := ts.do(t, http.MethodGet, "/api/users/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestProjectEndpointsRoleEnforcement(t *testing.T) {
	ts := newTestServer(t)
	managerToken, _ := ts.register(t, "Maya", types.RoleProjectManager)
	clientToken, _ := ts.register(t, "Oliver", types.RoleClient)
	designerToken, designerID := ts.register(t, "Lena", types.RoleDesigner)

	projectID := ts.createProject(t, clientToken, "Brand Refresh")

	t.Run("only clients create projects", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("title", "Not Allowed"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/projects", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+managerToken)
		w := httptest.NewRecorder()
		ts.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("designer list is manager-only", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/users/designers", clientToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = ts.do(t, http.MethodGet, "/api/users/designers", managerToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("update is manager-only", func(t *testing.T) {
		title := "Renamed"
		w := ts.do(t, http.MethodPut, "/api/projects/"+projectID, clientToken, gin.H{"title": title})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = ts.do(t, http.MethodPut, "/api/projects/"+projectID, managerToken, gin.H{"title": title})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("view requires a relationship to the project", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, "/api/projects/"+projectID, designerToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("assignment is manager-only and validates the target", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%s/assign", projectID), clientToken, gin.H{"designerId": designerID})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = ts.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%s/assign", projectID), managerToken, gin.H{"designerId": designerID})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			DesignerID   *string `json:"designerId"`
			DesignerName *string `json:"designerName"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.DesignerID)
		assert.Equal(t, designerID, *resp.DesignerID)

		// Assigned designer can now see the project.
		w = ts.do(t, http.MethodGet, "/api/projects/"+projectID, designerToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("assigning a non-designer fails", func(t *testing.T) {
		_, clientID := ts.register(t, "Priya", types.RoleClient)
		w := ts.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%s/assign", projectID), managerToken, gin.H{"designerId": clientID})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("delete is manager-only", func(t *testing.T) {
		w := ts.do(t, http.MethodDelete, "/api/projects/"+projectID, clientToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = ts.do(t, http.MethodDelete, "/api/projects/"+projectID, managerToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = ts.do(t, http.MethodGet, "/api/projects/"+projectID, managerToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProjectListScoping(t *testing.T) {
	ts := newTestServer(t)
	managerToken, _ := ts.register(t, "Maya", types.RoleProjectManager)
	oliverToken, _ := ts.register(t, "Oliver", types.RoleClient)
	priyaToken, _ := ts.register(t, "Priya", types.RoleClient)

	ts.createProject(t, oliverToken, "Brand Refresh")
	ts.createProject(t, oliverToken, "Packaging")
	ts.createProject(t, priyaToken, "Landing Page")

	listLen := func(token string) int {
		w := ts.do(t, http.MethodGet, "/api/projects", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var projects []json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &projects))
		return len(projects)
	}

	assert.Equal(t, 3, listLen(managerToken))
	assert.Equal(t, 2, listLen(oliverToken))
	assert.Equal(t, 1, listLen(priyaToken))
}

func TestFileEndpoints(t *testing.T) {
	ts := newTestServer(t)
	managerToken, _ := ts.register(t, "Maya", types.RoleProjectManager)
	clientToken, _ := ts.register(t, "Oliver", types.RoleClient)
	strangerToken, _ := ts.register(t, "Priya", types.RoleClient)

	projectID := ts.createProject(t, clientToken, "Brand Refresh")

	upload := func(token string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("files", "logo.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/projects/%s/files", projectID), &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		ts.router.ServeHTTP(w, req)
		return w
	}

	t.Run("appending files is manager-only", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, upload(strangerToken).Code)
		assert.Equal(t, http.StatusForbidden, upload(clientToken).Code)
	})

	var fileID string
	t.Run("manager uploads", func(t *testing.T) {
		w := upload(managerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var files []struct {
			ID       string `json:"id"`
			FileName string `json:"fileName"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &files))
		require.Len(t, files, 1)
		assert.Equal(t, "logo.png", files[0].FileName)
		fileID = files[0].ID
	})

	t.Run("download serves the original name", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, fmt.Sprintf("/api/projects/%s/files/%s", projectID, fileID), clientToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Disposition"), "logo.png")
		assert.Equal(t, "png-bytes", w.Body.String())
	})

	t.Run("stranger cannot download", func(t *testing.T) {
		w := ts.do(t, http.MethodGet, fmt.Sprintf("/api/projects/%s/files/%s", projectID, fileID), strangerToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("file delete is manager-only", func(t *testing.T) {
		w := ts.do(t, http.MethodDelete, fmt.Sprintf("/api/projects/%s/files/%s", projectID, fileID), clientToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/projects/%s/files/%s", projectID, fileID), managerToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestNotificationEndpoints(t *testing.T) {
	ts := newTestServer(t)
	managerToken, _ := ts.register(t, "Maya", types.RoleProjectManager)
	clientToken, _ := ts.register(t, "Oliver", types.RoleClient)
	designerToken, designerID := ts.register(t, "Lena", types.RoleDesigner)

	projectID := ts.createProject(t, clientToken, "Brand Refresh")
	w := ts.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%s/assign", projectID), managerToken, gin.H{"designerId": designerID})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/notifications/count", designerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var count struct {
		Total  int `json:"total"`
		Unread int `json:"unread"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &count))
	assert.Equal(t, 1, count.Total)
	assert.Equal(t, 1, count.Unread)

	w = ts.do(t, http.MethodGet, "/api/notifications?unread=true", designerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var notifications []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notifications))
	require.Len(t, notifications, 1)

	t.Run("someone else cannot mark it read", func(t *testing.T) {
		w := ts.do(t, http.MethodPut, "/api/notifications/"+notifications[0].ID+"/read", clientToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	w = ts.do(t, http.MethodPut, "/api/notifications/"+notifications[0].ID+"/read", designerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(t, http.MethodGet, "/api/notifications/count", designerToken, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &count))
	assert.Equal(t, 0, count.Unread)
}
