package services

import (
	"fmt"
	"time"

	"github.com/yeremiapane/restaurant-pos/models"
	"gorm.io/gorm"
)

func logActivity(tx *gorm.DB, entity string, recordID uint, action string, sessionID *uint, at time.Time) error {
	entry := models.ActivityLog{
		Entity:         entity,
		RecordID:       recordID,
		Action:         action,
		TableSessionID: sessionID,
		CreatedAt:      at,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("write activity log: %w", err)
	}
	return nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
