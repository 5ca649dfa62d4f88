package handlers

import (
	"net/http"

	"github.com/design-platform/design-platform-backend/internal/api/middleware"
	"github.com/design-platform/design-platform-backend/internal/models"
	"github.com/design-platform/design-platform-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ============================================
// User Handler
// ============================================

type UserHandler struct {
	userService service.UserService
	permissions service.PermissionService
}

// GetCurrentUser - Get the authenticated user's profile
// GET /api/users/me
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	user, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateCurrentUser - Update the authenticated user's profile
// PUT /api/users/me
func (h *UserHandler) UpdateCurrentUser(c *gin.Context) {
	user, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.userService.Update(c.Request.Context(), user.ID, req.Name, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(updated))
}

// ListDesigners - List all registered designers (managers only)
// GET /api/users/designers
func (h *UserHandler) ListDesigners(c *gin.Context) {
	user, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	if !h.permissions.CanListDesigners(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	designers, err := h.userService.ListDesigners(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch designers"})
		return
	}

	response := make([]models.UserResponse, len(designers))
	for i, d := range designers {
		response[i] = toUserResponse(d)
	}

	c.JSON(http.StatusOK, response)
}
