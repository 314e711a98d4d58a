package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"gorm.io/gorm"
)

// Options tunes the HTTP surface. The zero value is usable in tests.
type Options struct {
	CORSOrigins    []string
	TrustedProxies []string
	RateLimiter    *middlewares.RateLimiter
}

func SetupRouter(db *gorm.DB, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		r.SetTrustedProxies(nil)
	}

	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	if len(opts.CORSOrigins) > 0 {
		r.Use(middlewares.CORSMiddlewares(opts.CORSOrigins))
	}
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.RateLimit())
	}

	tableCtrl := controllers.NewTableController(db)
	sessionCtrl := controllers.NewTableSessionController(db)
	productCtrl := controllers.NewProductController(db)
	orderCtrl := controllers.NewOrderController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// TABLES (pre-seeded, read only)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/:table_id", tableCtrl.GetTableByID)
	r.GET("/tables/:table_id/session", tableCtrl.GetActiveSession)

	// TABLE SESSIONS
	sessions := r.Group("/table-sessions")
	{
		sessions.POST("", sessionCtrl.OpenSession)
		sessions.GET("", sessionCtrl.GetAllSessions)
		sessions.GET("/:session_id", sessionCtrl.GetSessionByID)
		sessions.PATCH("/:session_id/close", sessionCtrl.CloseSession)
		sessions.GET("/:session_id/activity", sessionCtrl.GetSessionActivity)
	}

	// PRODUCTS
	products := r.Group("/products")
	{
		products.GET("", productCtrl.GetAllProducts)
		products.GET("/:product_id", productCtrl.GetProductByID)
		products.POST("", productCtrl.CreateProduct)
		products.PUT("/:product_id", productCtrl.UpdateProduct)
		products.DELETE("/:product_id", productCtrl.DeleteProduct)
	}

	// ORDERS
	orders := r.Group("/orders")
	{
		orders.POST("", orderCtrl.CreateOrder)
		orders.GET("/table-session/:session_id", orderCtrl.GetOrdersBySession)
		orders.GET("/table-session/:session_id/total", orderCtrl.GetSessionTotal)
	}

	return r
}
