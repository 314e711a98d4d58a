package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a single line placed against a table session. Price is the product
// price at the moment the order was placed and never follows later catalog
// changes.
type Order struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	TableSessionID uint            `gorm:"not null;index" json:"table_session_id"`
	TableSession   TableSession    `gorm:"foreignKey:TableSessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ProductID      uint            `gorm:"not null;index" json:"product_id"`
	Product        Product         `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt      time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updated_at"`
}

// Total is the line amount, price times quantity.
func (o Order) Total() decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

// OrderView is an order joined with the name of the product it references.
type OrderView struct {
	ID             uint            `json:"id"`
	TableSessionID uint            `json:"table_session_id"`
	ProductID      uint            `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Total          decimal.Decimal `json:"total"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// SessionTotal aggregates every order of one table session.
type SessionTotal struct {
	TableSessionID uint            `json:"table_session_id"`
	Total          decimal.Decimal `json:"total"`
	Quantity       int64           `json:"quantity"`
}
