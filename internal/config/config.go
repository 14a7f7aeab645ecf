package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Addr        string
	DataDir     string
	PostgresDSN string // empty => local JSON order history
	RedisAddr   string // empty => file-backed cart storage

	// Remote backends; empty => built-in in-memory implementations.
	OrderAPIBaseURL   string
	AddressAPIBaseURL string

	// Flat checkout charges, not computed from items.
	DeliveryFee decimal.Decimal
	TaxAmount   decimal.Decimal

	JWTSecret string
	TokenTTL  time.Duration
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getdec(k, def string) decimal.Decimal {
	raw := getenv(k, def)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("[config] %s=%q is not a number, using %s", k, raw, def)
		d, _ = decimal.NewFromString(def)
	}
	return d
}

func getdur(k, def string) time.Duration {
	raw := getenv(k, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("[config] %s=%q is not a duration, using %s", k, raw, def)
		d, _ = time.ParseDuration(def)
	}
	return d
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists
	cfg := Config{
		Addr:              getenv("STOREFRONT_ADDR", ":8080"),
		DataDir:           getenv("STOREFRONT_DATA_DIR", "./data"),
		PostgresDSN:       getenv("POSTGRES_DSN", ""),
		RedisAddr:         getenv("REDIS_ADDR", ""),
		OrderAPIBaseURL:   getenv("ORDER_API_BASEURL", ""),
		AddressAPIBaseURL: getenv("ADDRESS_API_BASEURL", ""),
		DeliveryFee:       getdec("DELIVERY_FEE", "50"),
		TaxAmount:         getdec("TAX_AMOUNT", "25"),
		JWTSecret:         getenv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:          getdur("TOKEN_TTL", "24h"),
	}
	log.Printf("[config] STOREFRONT_ADDR=%s", cfg.Addr)
	log.Printf("[config] STOREFRONT_DATA_DIR=%s", cfg.DataDir)
	log.Printf("[config] DELIVERY_FEE=%s TAX_AMOUNT=%s", cfg.DeliveryFee, cfg.TaxAmount)
	return cfg
}
