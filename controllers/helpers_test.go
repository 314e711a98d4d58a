package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/database"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB gives every test its own in-memory SQLite database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:ctrl_%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	tableCtrl := controllers.NewTableController(db)
	sessionCtrl := controllers.NewTableSessionController(db)
	productCtrl := controllers.NewProductController(db)
	orderCtrl := controllers.NewOrderController(db)

	router.GET("/tables", tableCtrl.GetAllTables)
	router.GET("/tables/:table_id", tableCtrl.GetTableByID)
	router.GET("/tables/:table_id/session", tableCtrl.GetActiveSession)

	router.POST("/table-sessions", sessionCtrl.OpenSession)
	router.GET("/table-sessions", sessionCtrl.GetAllSessions)
	router.GET("/table-sessions/:session_id", sessionCtrl.GetSessionByID)
	router.PATCH("/table-sessions/:session_id/close", sessionCtrl.CloseSession)
	router.GET("/table-sessions/:session_id/activity", sessionCtrl.GetSessionActivity)

	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/:product_id", productCtrl.GetProductByID)
	router.POST("/products", productCtrl.CreateProduct)
	router.PUT("/products/:product_id", productCtrl.UpdateProduct)
	router.DELETE("/products/:product_id", productCtrl.DeleteProduct)

	router.POST("/orders", orderCtrl.CreateOrder)
	router.GET("/orders/table-session/:session_id", orderCtrl.GetOrdersBySession)
	router.GET("/orders/table-session/:session_id/total", orderCtrl.GetSessionTotal)
	return router
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, router *gin.Engine, method, url string, body interface{}) (int, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}
