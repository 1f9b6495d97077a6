package config

import (
	"os"
	"strconv"
	"time"

	"github.com/babychic/storefront/internal/pricing"
)

type Config struct {
	HTTPPort       string
	BackendBaseURL string
	SQLitePath     string
	MigrationsPath string
	CartStorageKey string
	RedisAddr      string // empty means in-memory catalog cache
	WhatsAppNumber string // E.164 without the leading +

	RequestTimeout  time.Duration
	UpstreamTimeout time.Duration
	ShutdownTimeout time.Duration
	CatalogTTL      time.Duration

	Rules pricing.Rules
}

// Load reads the configuration from the environment. The delivery
// rule values live here and nowhere else.
func Load() *Config {
	return &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:3000/api"),
		SQLitePath:     getEnv("SQLITE_PATH", "./storefront.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./internal/storage/migrations"),
		CartStorageKey: getEnv("CART_STORAGE_KEY", "babychic-cart"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		WhatsAppNumber: getEnv("WHATSAPP_NUMBER", "237690000000"),

		RequestTimeout:  30 * time.Second,
		UpstreamTimeout: 10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		CatalogTTL:      getEnvDuration("CATALOG_TTL", 5*time.Minute),

		Rules: pricing.Rules{
			FreeShippingThreshold: getEnvInt64("FREE_SHIPPING_THRESHOLD", 25000),
			FlatDeliveryFee:       getEnvInt64("FLAT_DELIVERY_FEE", 2500),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
