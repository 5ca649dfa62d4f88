package notification

import (
	"context"
	"fmt"

	"github.com/design-platform/design-platform-backend/internal/repository"
	"github.com/design-platform/design-platform-backend/internal/socket"
)

// Notification types
const (
	TypeDesignerAssigned   = "DESIGNER_ASSIGNED"
	TypeDesignerUnassigned = "DESIGNER_UNASSIGNED"
	TypeProjectCreated     = "PROJECT_CREATED"
	TypeProjectUpdated     = "PROJECT_UPDATED"
	TypeProjectDeleted     = "PROJECT_DELETED"
	TypeFileUploaded       = "FILE_UPLOADED"
)

// Service handles sending notifications
type Service struct {
	notificationRepo repository.NotificationRepository
	broadcaster      *socket.Broadcaster
}

// NewService creates a new notification service
func NewService(notificationRepo repository.NotificationRepository) *Service {
	return &Service{
		notificationRepo: notificationRepo,
	}
}

func (s *Service) SetBroadcaster(b *socket.Broadcaster) {
	s.broadcaster = b
}

// ============================================
// WebSocket Helper
// ============================================

// sendWebSocketNotification sends real-time notification via WebSocket
func (s *Service) sendWebSocketNotification(notification *repository.Notification) {
	if s.broadcaster == nil || notification == nil {
		return
	}

	s.broadcaster.SendNotification(notification.UserID, map[string]interface{}{
		"id":        notification.ID,
		"type":      notification.Type,
		"title":     notification.Title,
		"message":   notification.Message,
		"data":      notification.Data,
		"read":      notification.Read,
		"createdAt": notification.CreatedAt,
	})
}

// send persists the notification and pushes it over WebSocket
func (s *Service) send(ctx context.Context, notification *repository.Notification) error {
	if notification.UserID == "" {
		return nil // Skip if no user to notify
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	s.sendWebSocketNotification(notification)
	return nil
}

// ============================================
// Assignment Notifications
// ============================================

// SendDesignerAssigned notifies a designer they were placed on a project
func (s *Service) SendDesignerAssigned(ctx context.Context, designerID, projectTitle, projectID string) error {
	return s.send(ctx, &repository.Notification{
		UserID:  designerID,
		Type:    TypeDesignerAssigned,
		Title:   "Project Assigned",
		Message: fmt.Sprintf("You have been assigned to project: %s", projectTitle),
		Read:    false,
		Data: map[string]interface{}{
			"projectId": projectID,
			"action":    "view_project",
		},
	})
}

// SendDesignerUnassigned notifies a designer they were removed from a project
func (s *Service) SendDesignerUnassigned(ctx context.Context, designerID, projectTitle, projectID string) error {
	return s.send(ctx, &repository.Notification{
		UserID:  designerID,
		Type:    TypeDesignerUnassigned,
		Title:   "Project Unassigned",
		Message: fmt.Sprintf("You have been removed from project: %s", projectTitle),
		Read:    false,
		Data: map[string]interface{}{
			"projectId": projectID,
		},
	})
}

// ============================================
// Project Notifications
// ============================================

// SendProjectCreated tells managers a client opened a new project
func (s *Service) SendProjectCreated(ctx context.Context, managerIDs []string, clientName, projectTitle, projectID string) error {
	var errs []error

	for _, managerID := range managerIDs {
		if managerID == "" {
			continue
		}

		err := s.send(ctx, &repository.Notification{
			UserID:  managerID,
			Type:    TypeProjectCreated,
			Title:   "New Project",
			Message: fmt.Sprintf("%s created a new project: %s", clientName, projectTitle),
			Read:    false,
			Data: map[string]interface{}{
				"projectId": projectID,
				"action":    "view_project",
			},
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to notify manager %s: %w", managerID, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors sending project created notifications: %v", errs)
	}
	return nil
}

// SendProjectUpdated notifies the client that a manager changed their project
func (s *Service) SendProjectUpdated(ctx context.Context, clientID, projectTitle, projectID string) error {
	return s.send(ctx, &repository.Notification{
		UserID:  clientID,
		Type:    TypeProjectUpdated,
		Title:   "Project Updated",
		Message: fmt.Sprintf("Your project was updated: %s", projectTitle),
		Read:    false,
		Data: map[string]interface{}{
			"projectId": projectID,
			"action":    "view_project",
		},
	})
}

// SendProjectDeleted notifies affected users that a project was removed
func (s *Service) SendProjectDeleted(ctx context.Context, userIDs []string, excludeUserID, projectTitle string) error {
	var errs []error

	for _, userID := range userIDs {
		if userID == "" || userID == excludeUserID {
			continue
		}

		err := s.send(ctx, &repository.Notification{
			UserID:  userID,
			Type:    TypeProjectDeleted,
			Title:   "Project Deleted",
			Message: fmt.Sprintf("Project was deleted: %s", projectTitle),
			Read:    false,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to notify user %s: %w", userID, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors sending project deleted notifications: %v", errs)
	}
	return nil
}

// ============================================
// File Notifications
// ============================================

// SendFileUploaded notifies project participants about new files
func (s *Service) SendFileUploaded(ctx context.Context, userIDs []string, uploaderID, fileName, projectTitle, projectID string) error {
	var errs []error

	for _, userID := range userIDs {
		if userID == "" || userID == uploaderID {
			continue // Don't notify the uploader
		}

		err := s.send(ctx, &repository.Notification{
			UserID:  userID,
			Type:    TypeFileUploaded,
			Title:   "New File Uploaded",
			Message: fmt.Sprintf("File %s was added to project: %s", fileName, projectTitle),
			Read:    false,
			Data: map[string]interface{}{
				"projectId": projectID,
				"fileName":  fileName,
				"action":    "view_project",
			},
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to notify user %s: %w", userID, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors sending file uploaded notifications: %v", errs)
	}
	return nil
}
