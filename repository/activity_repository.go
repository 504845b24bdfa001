package repository

import (
	"pg-backend/models"

	"gorm.io/gorm"
)

// ActivityRepository is append-and-read-only: the audit log offers no update
// or delete path.
type ActivityRepository interface {
	Append(activity *models.Activity) error
	Recent(limit int) ([]models.Activity, error)
}

type gormActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &gormActivityRepository{db: db}
}

func (r *gormActivityRepository) Append(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

func (r *gormActivityRepository) Recent(limit int) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.Order("timestamp DESC").Limit(limit).Find(&activities).Error
	return activities, err
}
