package models

import "time"

// TableSession is one occupancy of a table. OpenTableID mirrors TableID while
// the session is open and is NULL once it is closed; its unique index is what
// keeps a table from having two open sessions at once.
type TableSession struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	TableID     uint       `gorm:"not null;index" json:"table_id"`
	Table       Table      `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	OpenedAt    time.Time  `gorm:"not null;index" json:"opened_at"`
	ClosedAt    *time.Time `json:"closed_at"`
	OpenTableID *uint      `gorm:"uniqueIndex:idx_table_sessions_open_table" json:"-"`
}

// IsOpen reports whether the session still accepts orders.
func (s TableSession) IsOpen() bool {
	return s.ClosedAt == nil
}
