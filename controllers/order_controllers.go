package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/gorm"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{Orders: services.NewOrderService(db)}
}

// CreateOrder -> add an order to an open table session
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		TableSessionID uint `json:"table_session_id" binding:"required"`
		ProductID      uint `json:"product_id" binding:"required"`
		Quantity       int  `json:"quantity" binding:"required,gt=0,lte=1000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.PlaceOrder(c.Request.Context(), req.TableSessionID, req.ProductID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %d placed on table session %d (product=%d qty=%d)",
		order.ID, order.TableSessionID, order.ProductID, order.Quantity)
	utils.RespondJSON(c, http.StatusCreated, "Order created", newOrderView(*order))
}

// GetOrdersBySession -> itemized orders of a session, newest first
func (oc *OrderController) GetOrdersBySession(c *gin.Context) {
	id, ok := paramID(c, "session_id")
	if !ok {
		return
	}
	orders, err := oc.Orders.ListOrders(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", newOrderListView(orders))
}

// GetSessionTotal -> running total and item count of a session
func (oc *OrderController) GetSessionTotal(c *gin.Context) {
	id, ok := paramID(c, "session_id")
	if !ok {
		return
	}
	total, err := oc.Orders.GetSessionTotal(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table session total", newSessionTotalView(*total))
}
