package cron

import (
	"context"
	"log"
	"time"

	"github.com/design-platform/design-platform-backend/internal/repository"
	"github.com/robfig/cron/v3"
)

// Scheduler handles scheduled maintenance tasks
type Scheduler struct {
	cron             *cron.Cron
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

// NewScheduler creates a new scheduler
func NewScheduler(userRepo repository.UserRepository, notificationRepo repository.NotificationRepository) *Scheduler {
	return &Scheduler{
		cron:             cron.New(),
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Purge expired refresh tokens - Run every day at 3 AM
	s.cron.AddFunc("0 3 * * *", func() {
		log.Println("[Cron] Running refresh token cleanup...")
		s.cleanupExpiredTokens()
	})

	// Clean up old read notifications - Run every Sunday at midnight
	s.cron.AddFunc("0 0 * * 0", func() {
		log.Println("[Cron] Running notification cleanup...")
		s.cleanupOldNotifications()
	})

	s.cron.Start()
	log.Println("[Cron] ✅ Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[Cron] Scheduler stopped")
}

func (s *Scheduler) cleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.userRepo.DeleteExpiredRefreshTokens(ctx)
	if err != nil {
		log.Printf("[Cron] ❌ Token cleanup failed: %v", err)
		return
	}
	log.Printf("[Cron] Deleted %d expired refresh tokens", deleted)
}

func (s *Scheduler) cleanupOldNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Read notifications older than 30 days are noise
	cutoff := time.Now().AddDate(0, 0, -30)
	deleted, err := s.notificationRepo.DeleteOlderThan(ctx, cutoff, true)
	if err != nil {
		log.Printf("[Cron] ❌ Notification cleanup failed: %v", err)
		return
	}
	log.Printf("[Cron] Deleted %d old notifications", deleted)
}
