package controllers

import (
	"time"

	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type productView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newProductView(p models.Product) productView {
	return productView{
		ID:        p.ID,
		Name:      p.Name,
		Price:     utils.FormatMoney(p.Price),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type orderView struct {
	ID             uint      `json:"id"`
	TableSessionID uint      `json:"table_session_id"`
	ProductID      uint      `json:"product_id"`
	ProductName    string    `json:"product_name,omitempty"`
	Quantity       int       `json:"quantity"`
	Price          string    `json:"price"`
	Total          string    `json:"total"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func newOrderView(o models.Order) orderView {
	return orderView{
		ID:             o.ID,
		TableSessionID: o.TableSessionID,
		ProductID:      o.ProductID,
		Quantity:       o.Quantity,
		Price:          utils.FormatMoney(o.Price),
		Total:          utils.FormatMoney(o.Total()),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func newOrderListView(rows []models.OrderView) []orderView {
	out := make([]orderView, 0, len(rows))
	for _, r := range rows {
		out = append(out, orderView{
			ID:             r.ID,
			TableSessionID: r.TableSessionID,
			ProductID:      r.ProductID,
			ProductName:    r.ProductName,
			Quantity:       r.Quantity,
			Price:          utils.FormatMoney(r.Price),
			Total:          utils.FormatMoney(r.Total),
			CreatedAt:      r.CreatedAt,
			UpdatedAt:      r.UpdatedAt,
		})
	}
	return out
}

type sessionTotalView struct {
	TableSessionID uint   `json:"table_session_id"`
	Total          string `json:"total"`
	Quantity       int64  `json:"quantity"`
	FormattedTotal string `json:"formatted_total"`
}

func newSessionTotalView(t models.SessionTotal) sessionTotalView {
	return sessionTotalView{
		TableSessionID: t.TableSessionID,
		Total:          utils.FormatMoney(t.Total),
		Quantity:       t.Quantity,
		FormattedTotal: utils.FormatCurrency(t.Total),
	}
}
