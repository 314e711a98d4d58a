package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-pos/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxOrderQuantity is the largest quantity a single order may carry.
const MaxOrderQuantity = 1000

type OrderService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db, Now: utcNow}
}

// PlaceOrder records an order against an open session, copying the current
// product price into the order. The session is checked before the product.
func (s *OrderService) PlaceOrder(ctx context.Context, sessionID, productID uint, quantity int) (*models.Order, error) {
	if quantity <= 0 {
		return nil, newError(ErrValidation, "quantity must be a positive integer")
	}
	if quantity > MaxOrderQuantity {
		return nil, newError(ErrValidation, "quantity must not exceed %d", MaxOrderQuantity)
	}

	var order models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session models.TableSession
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&session, sessionID).Error; err != nil {
			return lookupError(err, "table session", sessionID)
		}
		if !session.IsOpen() {
			return newError(ErrConflict, "table session %d is closed", sessionID)
		}

		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			return lookupError(err, "product", productID)
		}

		now := s.Now()
		order = models.Order{
			TableSessionID: session.ID,
			ProductID:      product.ID,
			Quantity:       quantity,
			Price:          product.Price,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return logActivity(tx, models.EntityOrder, order.ID, models.ActionPlace, &session.ID, now)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the itemized orders of a session, most recent first.
// Products deleted from the catalog still name their historical orders.
func (s *OrderService) ListOrders(ctx context.Context, sessionID uint) ([]models.OrderView, error) {
	rows := []models.OrderView{}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSession(tx, sessionID); err != nil {
			return err
		}
		err := tx.Table("orders").
			Select("orders.id, orders.table_session_id, orders.product_id, products.name AS product_name, " +
				"orders.quantity, orders.price, orders.created_at, orders.updated_at").
			Joins("JOIN products ON products.id = orders.product_id").
			Where("orders.table_session_id = ?", sessionID).
			Order("orders.created_at DESC").
			Order("orders.id DESC").
			Scan(&rows).Error
		if err != nil {
			return fmt.Errorf("list orders of table session %d: %w", sessionID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Total = rows[i].Price.Mul(decimal.NewFromInt(int64(rows[i].Quantity)))
	}
	return rows, nil
}

// GetSessionTotal sums price*quantity and quantity over every order of a
// session. A session without orders totals zero.
func (s *OrderService) GetSessionTotal(ctx context.Context, sessionID uint) (*models.SessionTotal, error) {
	var lines []struct {
		Price    decimal.Decimal
		Quantity int64
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSession(tx, sessionID); err != nil {
			return err
		}
		err := tx.Model(&models.Order{}).
			Select("price, quantity").
			Where("table_session_id = ?", sessionID).
			Scan(&lines).Error
		if err != nil {
			return fmt.Errorf("sum orders of table session %d: %w", sessionID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	total := &models.SessionTotal{TableSessionID: sessionID, Total: decimal.Zero}
	for _, l := range lines {
		total.Total = total.Total.Add(l.Price.Mul(decimal.NewFromInt(l.Quantity)))
		total.Quantity += l.Quantity
	}
	return total, nil
}

func ensureSession(tx *gorm.DB, sessionID uint) error {
	var session models.TableSession
	if err := tx.Select("id").First(&session, sessionID).Error; err != nil {
		return lookupError(err, "table session", sessionID)
	}
	return nil
}
