package service

import (
	"context"
	"log"

	"github.com/design-platform/design-platform-backend/internal/repository"
	"github.com/design-platform/design-platform-backend/internal/socket"
)

// ============================================
// Notification Service (for handlers)
// ============================================

type NotificationService interface {
	List(ctx context.Context, userID string, unreadOnly bool) ([]*repository.Notification, error)
	Count(ctx context.Context, userID string) (total int, unread int, err error)
	MarkAsRead(ctx context.Context, userID, id string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID, id string) error
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	broadcaster      *socket.Broadcaster
}

func NewNotificationService(notificationRepo repository.NotificationRepository, broadcaster *socket.Broadcaster) NotificationService {
	return &notificationService{notificationRepo: notificationRepo, broadcaster: broadcaster}
}

// pushCount sends the fresh unread count to the user's open connections so
// badges update without a refetch
func (s *notificationService) pushCount(ctx context.Context, userID string) {
	if s.broadcaster == nil {
		return
	}
	total, unread, err := s.notificationRepo.CountByUserID(ctx, userID)
	if err != nil {
		log.Printf("[Notification] Failed to refresh count for user %s: %v", userID, err)
		return
	}
	s.broadcaster.SendNotificationCount(userID, total, unread)
}

func (s *notificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]*repository.Notification, error) {
	return s.notificationRepo.FindByUserID(ctx, userID, unreadOnly)
}

func (s *notificationService) Count(ctx context.Context, userID string) (total int, unread int, err error) {
	return s.notificationRepo.CountByUserID(ctx, userID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, id string) error {
	notification, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotFound
	}
	if notification.UserID != userID {
		return ErrForbidden
	}
	if err := s.notificationRepo.MarkAsRead(ctx, id); err != nil {
		return err
	}
	s.pushCount(ctx, userID)
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	s.pushCount(ctx, userID)
	return nil
}

func (s *notificationService) Delete(ctx context.Context, userID, id string) error {
	notification, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotFound
	}
	if notification.UserID != userID {
		return ErrForbidden
	}
	if err := s.notificationRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.pushCount(ctx, userID)
	return nil
}
