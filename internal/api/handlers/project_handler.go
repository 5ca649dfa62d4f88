package handlers

import (
	"net/http"

	"github.com/design-platform/design-platform-backend/internal/api/middleware"
	"github.com/design-platform/design-platform-backend/internal/models"
	"github.com/design-platform/design-platform-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ============================================
// Project Handler
// ============================================

type ProjectHandler struct {
	projectService service.ProjectService
	fileService    service.FileService
}

// List - List projects visible to the authenticated user
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	user, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	projects, err := h.projectService.List(c.Request.Context(), user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response := make([]models.ProjectResponse, len(projects))
	for i, p := range projects {
		response[i] = toProjectResponse(p)
	}

	c.JSON(http.StatusOK, response)
}

// Create - Create a new project with optional initial files
// POST /api/projects (multipart/form-data)
func (h *ProjectHandler) Create(c *gin.Context) {
	user, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var req models.CreateProjectRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uploads, closers, err := collectUploads(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer closeAll(closers)

	project, err := h.projectService.Create(c.Request.Context(), user, req.Title, req.Description, uploads)
	if err != nil {
		if project != nil {
			// The project was created but some files did not make it;
			// report what exists so the client can retry the rest
			c.JSON(http.StatusCreated, gin.H{
				"project": toProjectResponse(project),
				"warning": "Some files could not be uploaded",
			})
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

// Get - Get a project by ID
// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	user, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response := toProjectResponse(project)

	// The detail view carries the file list; listing failures leave it empty
	// rather than failing the fetch
	files, err := h.fileService.ListFiles(c.Request.Context(), project.ID)
	if err == nil {
		response.Files = make([]models.ProjectFileResponse, len(files))
		for i, f := range files {
			response.Files[i] = toProjectFileResponse(f)
		}
	}

	c.JSON(http.StatusOK, response)
}

// Update - Update project title/description (managers only)
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	user, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), user, c.Param("id"), req.Title, req.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// Delete - Delete a project with its files (managers only)
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	user, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// AssignDesigner - Put a designer on a project (managers only)
// POST /api/projects/:id/assign
func (h *ProjectHandler) AssignDesigner(c *gin.Context) {
	user, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	var req models.AssignDesignerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.AssignDesigner(c.Request.Context(), user, c.Param("id"), req.DesignerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// UnassignDesigner - Remove the designer from a project (managers only)
// DELETE /api/projects/:id/assign
func (h *ProjectHandler) UnassignDesigner(c *gin.Context) {
	user, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}

	project, err := h.projectService.UnassignDesigner(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}
