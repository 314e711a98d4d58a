package database

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

// SeedTables makes sure tables numbered 1..count exist. Numbers that are
// already present are left untouched.
func SeedTables(db *gorm.DB, count, capacity int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		created := 0
		for n := 1; n <= count; n++ {
			var existing models.Table
			err := tx.Where("table_number = ?", n).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("lookup table %d: %w", n, err)
			}
			if err := tx.Create(&models.Table{TableNumber: n, Capacity: capacity}).Error; err != nil {
				return fmt.Errorf("create table %d: %w", n, err)
			}
			created++
		}
		if created > 0 {
			utils.InfoLogger.Printf("Seeded %d tables", created)
		}
		return nil
	})
}
