package models

import (
	"time"
)

const (
	EntityTableSession = "table_session"
	EntityOrder        = "order"
	EntityProduct      = "product"
)

const (
	ActionOpen   = "open"
	ActionClose  = "close"
	ActionPlace  = "place"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ActivityLog is written in the same transaction as the change it records.
type ActivityLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Entity         string    `gorm:"type:varchar(50);not null;index:idx_entity_record" json:"entity"`
	RecordID       uint      `gorm:"not null;index:idx_entity_record" json:"record_id"`
	Action         string    `gorm:"type:varchar(20);not null" json:"action"`
	TableSessionID *uint     `gorm:"index" json:"table_session_id,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}
