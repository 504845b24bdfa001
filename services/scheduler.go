package services

import (
	"context"
	"log"
	"time"
)

// ReminderScheduler ticks once a day and fires the monthly reminder run; the
// 5th-of-month gate lives inside the notification policy, so off days are a
// cheap no-op.
type ReminderScheduler struct {
	notifications *NotificationService
	interval      time.Duration
}

func NewReminderScheduler(notifications *NotificationService) *ReminderScheduler {
	return &ReminderScheduler{notifications: notifications, interval: 24 * time.Hour}
}

// Run blocks until ctx is cancelled. Call it from its own goroutine.
func (s *ReminderScheduler) Run(ctx context.Context) {
	log.Printf("📅 Monthly reminder scheduler started (checking every %s)", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("📅 Monthly reminder scheduler stopped")
			return
		case <-ticker.C:
			result := s.notifications.RunMonthlyReminders(false)
			if result.Skipped {
				continue
			}
			log.Printf("📅 Scheduled monthly reminders: %d sent, %d failed", result.Sent, result.Failed)
		}
	}
}
