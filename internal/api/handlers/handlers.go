package handlers

import (
	"github.com/design-platform/design-platform-backend/internal/models"
	"github.com/design-platform/design-platform-backend/internal/repository"
	"github.com/design-platform/design-platform-backend/internal/service"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Project      *ProjectHandler
	File         *FileHandler
	Notification *NotificationHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         &AuthHandler{authService: services.Auth},
		User:         &UserHandler{userService: services.User, permissions: services.Permission},
		Project:      &ProjectHandler{projectService: services.Project, fileService: services.File},
		File:         &FileHandler{projectService: services.Project, fileService: services.File, permissions: services.Permission, notifier: services.Notifier, broadcaster: services.Broadcaster},
		Notification: &NotificationHandler{notificationService: services.Notification},
	}
}

// ============================================
// Response Mappers
// ============================================

func toUserResponse(u *repository.User) models.UserResponse {
	return models.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func toProjectResponse(p *repository.Project) models.ProjectResponse {
	return models.ProjectResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		ClientID:     p.ClientID,
		DesignerID:   p.DesignerID,
		DesignerName: p.DesignerName,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toProjectFileResponse(f *repository.ProjectFile) models.ProjectFileResponse {
	return models.ProjectFileResponse{
		ID:         f.ID,
		ProjectID:  f.ProjectID,
		FileName:   f.FileName,
		UploadedBy: f.UploadedBy,
		CreatedAt:  f.CreatedAt,
	}
}

func toNotificationResponse(n *repository.Notification) models.NotificationResponse {
	resp := models.NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
	if n.Data != nil {
		resp.Data = &n.Data
	}
	return resp
}
