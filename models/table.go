package models

import "time"

type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TableNumber int       `gorm:"not null;uniqueIndex" json:"table_number"`
	Capacity    int       `gorm:"not null;default:4" json:"capacity"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
