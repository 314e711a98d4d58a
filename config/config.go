package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/restaurant-pos/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	GinMode        string        `env:"GIN_MODE" envDefault:"debug"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	DBDriver       string        `env:"DB_DRIVER" envDefault:"sqlite"`
	DBDSN          string        `env:"DB_DSN" envDefault:"file:restaurant.db?_foreign_keys=on"`
	SlowQuery      time.Duration `env:"DB_SLOW_QUERY" envDefault:"200ms"`
	SeedTables     int           `env:"SEED_TABLES" envDefault:"10"`
	SeedCapacity   int           `env:"SEED_TABLE_CAPACITY" envDefault:"4"`
	RateLimit      float64       `env:"RATE_LIMIT" envDefault:"50"`
	RateBurst      int           `env:"RATE_BURST" envDefault:"100"`
	CORSOrigins    []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://127.0.0.1:5500"`
	TrustedProxies []string      `env:"TRUSTED_PROXIES" envSeparator:"," envDefault:"127.0.0.1"`
	CurrencyLocale string        `env:"CURRENCY_LOCALE" envDefault:"en-US"`
	CurrencySymbol string        `env:"CURRENCY_SYMBOL" envDefault:"$"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.DBDriver) {
	case DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("DB_DSN is required")
	}
	if c.SeedTables < 0 {
		return errors.New("SEED_TABLES must not be negative")
	}
	if c.SeedCapacity <= 0 {
		return errors.New("SEED_TABLE_CAPACITY must be positive")
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return errors.New("RATE_LIMIT and RATE_BURST must be positive")
	}
	return nil
}

// InitDB opens the configured database. SQLite is limited to a single
// connection so that transactions serialize.
func InitDB(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(cfg.DBDriver) {
	case DriverMySQL:
		dialector = mysql.Open(cfg.DBDSN)
	default:
		dialector = sqlite.Open(cfg.DBDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger: logger.New(utils.InfoLogger, logger.Config{
			SlowThreshold:             cfg.SlowQuery,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if strings.ToLower(cfg.DBDriver) == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return db, nil
}
