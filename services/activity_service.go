package services

import (
	"log"
	"time"

	"pg-backend/models"
	"pg-backend/repository"
)

// ActivityService records the audit trail. Logging must never fail a
// business operation, so append errors are logged and swallowed.
type ActivityService struct {
	activities repository.ActivityRepository
}

func NewActivityService(activities repository.ActivityRepository) *ActivityService {
	return &ActivityService{activities: activities}
}

func (s *ActivityService) Log(activityType, description, roomNumber, guestName string, amount *int) {
	activity := &models.Activity{
		ActivityType: activityType,
		Description:  description,
		RoomNumber:   roomNumber,
		GuestName:    guestName,
		Amount:       amount,
		Timestamp:    time.Now().UTC(),
	}
	if err := s.activities.Append(activity); err != nil {
		log.Printf("⚠️ failed to record %s activity: %v", activityType, err)
	}
}

func (s *ActivityService) Recent(limit int) ([]models.Activity, error) {
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	return s.activities.Recent(limit)
}
