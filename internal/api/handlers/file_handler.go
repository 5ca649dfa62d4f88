package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/design-platform/design-platform-backend/internal/api/middleware"
	"github.com/design-platform/design-platform-backend/internal/models"
	"github.com/design-platform/design-platform-backend/internal/notification"
	"github.com/design-platform/design-platform-backend/internal/repository"
	"github.com/design-platform/design-platform-backend/internal/service"
	"github.com/design-platform/design-platform-backend/internal/socket"
	"github.com/gin-gonic/gin"
)

// ============================================
// File Handler
// ============================================

type FileHandler struct {
	projectService service.ProjectService
	fileService    service.FileService
	permissions    service.PermissionService
	notifier       *notification.Service
	broadcaster    *socket.Broadcaster
}

// collectUploads pulls every file out of the multipart form in order
func collectUploads(c *gin.Context) ([]service.FileUpload, []io.Closer, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if err == http.ErrNotMultipart {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var uploads []service.FileUpload
	var closers []io.Closer

	for _, header := range form.File["files"] {
		f, err := header.Open()
		if err != nil {
			closeAll(closers)
			return nil, nil, err
		}
		closers = append(closers, f)
		uploads = append(uploads, service.FileUpload{
			Name: header.Filename,
			Body: f,
		})
	}

	return uploads, closers, nil
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		c.Close()
	}
}

// Upload - Attach files to an existing project
// POST /api/projects/:id/files (multipart/form-data)
func (h *FileHandler) Upload(c *gin.Context) {
	user, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	projectID := c.Param("id")

	// Appending files to an existing project is part of editing it
	if !h.permissions.CanAppendFiles(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	project, err := h.projectService.GetByID(c.Request.Context(), user, projectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	uploads, closers, err := collectUploads(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer closeAll(closers)

	if len(uploads) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}

	saved, err := h.fileService.UploadFiles(c.Request.Context(), projectID, user.ID, uploads)
	if err != nil {
		// Some files may already be stored; report both sides
		response := make([]models.ProjectFileResponse, len(saved))
		for i, f := range saved {
			response[i] = toProjectFileResponse(f)
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Upload failed partway through",
			"saved": response,
		})
		return
	}

	h.notifyFilesUploaded(c, user, project, saved)

	response := make([]models.ProjectFileResponse, len(saved))
	for i, f := range saved {
		response[i] = toProjectFileResponse(f)
	}

	c.JSON(http.StatusCreated, response)
}

// notifyFilesUploaded tells the other project participants about new files
func (h *FileHandler) notifyFilesUploaded(c *gin.Context, uploader *repository.User, project *repository.Project, saved []*repository.ProjectFile) {
	participants := []string{project.ClientID}
	if project.DesignerID != nil {
		participants = append(participants, *project.DesignerID)
	}

	for _, f := range saved {
		if h.notifier != nil {
			if err := h.notifier.SendFileUploaded(c.Request.Context(), participants, uploader.ID, f.FileName, project.Title, project.ID); err != nil {
				log.Printf("[File] Failed to send upload notifications: %v", err)
			}
		}
		if h.broadcaster != nil {
			h.broadcaster.BroadcastFileUploaded(project.ID, map[string]interface{}{
				"projectId": project.ID,
				"fileId":    f.ID,
				"fileName":  f.FileName,
			}, uploader.ID)
		}
	}
}

// List - List a project's files
// GET /api/projects/:id/files
func (h *FileHandler) List(c *gin.Context) {
	user, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	projectID := c.Param("id")

	if _, err := h.projectService.GetByID(c.Request.Context(), user, projectID); err != nil {
		handleServiceError(c, err)
		return
	}

	files, err := h.fileService.ListFiles(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch files"})
		return
	}

	response := make([]models.ProjectFileResponse, len(files))
	for i, f := range files {
		response[i] = toProjectFileResponse(f)
	}

	c.JSON(http.StatusOK, response)
}

// Download - Stream a file back under its original name
// GET /api/projects/:id/files/:fileId
func (h *FileHandler) Download(c *gin.Context) {
	user, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	projectID := c.Param("id")

	if _, err := h.projectService.GetByID(c.Request.Context(), user, projectID); err != nil {
		handleServiceError(c, err)
		return
	}

	body, file, err := h.fileService.DownloadFile(c.Request.Context(), projectID, c.Param("fileId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, body); err != nil {
		// Headers are already out; nothing useful left to send
		c.Abort()
	}
}

// Delete - Remove a single file (managers only)
// DELETE /api/projects/:id/files/:fileId
func (h *FileHandler) Delete(c *gin.Context) {
	user, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	projectID := c.Param("id")

	if !h.permissions.CanDeleteProject(user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	if _, err := h.projectService.GetByID(c.Request.Context(), user, projectID); err != nil {
		handleServiceError(c, err)
		return
	}

	fileID := c.Param("fileId")
	if err := h.fileService.DeleteFile(c.Request.Context(), projectID, fileID); err != nil {
		handleServiceError(c, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastFileDeleted(projectID, fileID, user.ID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted"})
}
