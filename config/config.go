package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"foodie-storefront/cart"
	"foodie-storefront/models"
	"foodie-storefront/orders"

	"github.com/glebarez/sqlite"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config is the storefront's runtime configuration
type Config struct {
	Port      string `yaml:"port"`
	GinMode   string `yaml:"gin_mode"`
	DBPath    string `yaml:"db_path"`
	JWTSecret string `yaml:"jwt_secret"`

	TokenTTL time.Duration `yaml:"token_ttl"`

	Pricing cart.Pricing `yaml:"pricing"`
	// CheckoutTaxIncludesDeliveryFee makes the checkout stage tax subtotal+fee.
	// The cart view always taxes the subtotal only.
	CheckoutTaxIncludesDeliveryFee bool `yaml:"checkout_tax_includes_delivery_fee"`

	Delays Delays `yaml:"delays"`
}

// Delays are the latencies of the simulated backend
type Delays struct {
	Login   time.Duration `yaml:"login"`
	Signup  time.Duration `yaml:"signup"`
	Payment time.Duration `yaml:"payment"`
	Order   orders.Delays `yaml:"order"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Port:                           "8080",
		DBPath:                         "foodie.db",
		JWTSecret:                      "foodie_storefront_local_secret",
		TokenTTL:                       24 * time.Hour,
		Pricing:                        cart.DefaultPricing(),
		CheckoutTaxIncludesDeliveryFee: true,
		Delays: Delays{
			Login:   time.Second,
			Signup:  time.Second,
			Payment: 3 * time.Second,
			Order:   orders.DefaultDelays(),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load applies the YAML file at path (if any) over the defaults, then the
// environment: PORT, GIN_MODE, DB_PATH, JWT_SECRET.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Printf("config file %s not found, using defaults", path)
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Pricing.Fee.IsNegative() || c.Pricing.FreeDeliveryThreshold.IsNegative() || c.Pricing.TaxRate.IsNegative() {
		return errors.New("pricing values must not be negative")
	}
	if c.JWTSecret == "" {
		return errors.New("jwt_secret must not be empty")
	}
	if c.TokenTTL <= 0 {
		return errors.New("token_ttl must be positive")
	}
	return nil
}

// OpenDB opens the on-device sqlite database and migrates every model
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// sqlite allows a single writer
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.StorageEntry{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("✅ Database connected and migrated successfully")
	return db, nil
}
