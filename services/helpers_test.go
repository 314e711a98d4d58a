package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-pos/database"
	"github.com/yeremiapane/restaurant-pos/models"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory SQLite database for one test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
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

// steppingClock returns a clock that advances one second per call.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

type fixture struct {
	db       *gorm.DB
	sessions *SessionService
	orders   *OrderService
	products *ProductService
	tables   *TableService
}

func newFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	clock := steppingClock()

	f := &fixture{
		db:       db,
		sessions: NewSessionService(db),
		orders:   NewOrderService(db),
		products: NewProductService(db),
		tables:   NewTableService(db),
	}
	f.sessions.Now = clock
	f.orders.Now = clock
	f.products.Now = clock
	return f
}

func (f *fixture) table(t *testing.T, number int) models.Table {
	t.Helper()
	table := models.Table{TableNumber: number, Capacity: 4}
	require.NoError(t, f.db.Create(&table).Error)
	return table
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, money(want).Equal(got), "expected %s, got %s", want, got.String())
}
