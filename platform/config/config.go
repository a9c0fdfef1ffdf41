// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported persistence sinks for the cart snapshot.
const (
	CartStoreMemory   = "memory"
	CartStoreRedis    = "redis"
	CartStorePostgres = "postgres"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSOrigins() []string
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// CatalogConfig provides settings for the catalog API client.
type CatalogConfig interface {
	GetCatalogBaseURL() string
	GetCatalogTimeout() time.Duration
	GetCatalogRateLimit() float64
	GetCatalogRateBurst() int
	GetCatalogMaxConcurrent() int
	GetCatalogCategories() []string
}

// CartConfig provides settings for the cart store and its persistence sink.
type CartConfig interface {
	GetCartStore() string
	GetCartKey() string
	GetCartTTL() time.Duration
}

// RedisConfig provides settings for the Redis persistence sink.
type RedisConfig interface {
	GetRedisURL() string
}

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// NotificationConfig provides settings for the toast feed.
type NotificationConfig interface {
	GetNotificationBuffer() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	CORSOrigins          []string
	RateLimitRPS         float64
	RateLimitBurst       int
	CatalogBaseURL       string
	CatalogTimeout       time.Duration
	CatalogRateLimit     float64
	CatalogRateBurst     int
	CatalogMaxConcurrent int
	CatalogCategories    []string
	CartStore            string
	CartKey              string
	CartTTL              time.Duration
	RedisURL             string
	DatabaseURL          string
	NotificationBuffer   int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// CatalogConfig implementation
func (c *Config) GetCatalogBaseURL() string        { return c.CatalogBaseURL }
func (c *Config) GetCatalogTimeout() time.Duration { return c.CatalogTimeout }
func (c *Config) GetCatalogRateLimit() float64     { return c.CatalogRateLimit }
func (c *Config) GetCatalogRateBurst() int         { return c.CatalogRateBurst }
func (c *Config) GetCatalogMaxConcurrent() int     { return c.CatalogMaxConcurrent }
func (c *Config) GetCatalogCategories() []string   { return c.CatalogCategories }

// CartConfig implementation
func (c *Config) GetCartStore() string      { return c.CartStore }
func (c *Config) GetCartKey() string        { return c.CartKey }
func (c *Config) GetCartTTL() time.Duration { return c.CartTTL }

// RedisConfig implementation
func (c *Config) GetRedisURL() string { return c.RedisURL }

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// NotificationConfig implementation
func (c *Config) GetNotificationBuffer() int { return c.NotificationBuffer }

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool { return strings.EqualFold(c.Env, "development") }

// Load reads configuration from environment variables (and a .env file when present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", "127.0.0.1:8080"),
		CORSOrigins:          splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		RateLimitRPS:         mustFloat(getEnv("RATE_LIMIT_RPS", "20")),
		RateLimitBurst:       mustInt(getEnv("RATE_LIMIT_BURST", "40")),
		CatalogBaseURL:       strings.TrimRight(getEnv("CATALOG_BASE_URL", "https://fakestoreapi.com"), "/"),
		CatalogTimeout:       mustDuration(getEnv("CATALOG_TIMEOUT", "10s")),
		CatalogRateLimit:     mustFloat(getEnv("CATALOG_RATE_LIMIT", "5")),
		CatalogRateBurst:     mustInt(getEnv("CATALOG_RATE_BURST", "5")),
		CatalogMaxConcurrent: mustInt(getEnv("CATALOG_MAX_CONCURRENT", "4")),
		CatalogCategories:    splitCSV(getEnv("CATALOG_CATEGORIES", "")),
		CartStore:            strings.ToLower(strings.TrimSpace(getEnv("CART_STORE", CartStoreMemory))),
		CartKey:              getEnv("CART_KEY", "cart"),
		CartTTL:              mustDuration(getEnv("CART_TTL", "0s")),
		RedisURL:             getEnv("REDIS_URL", ""),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		NotificationBuffer:   mustInt(getEnv("NOTIFICATION_BUFFER", "50")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.CatalogBaseURL == "" {
		return fmt.Errorf("CATALOG_BASE_URL is required")
	}
	if strings.TrimSpace(c.CartKey) == "" {
		return fmt.Errorf("CART_KEY must not be empty")
	}

	switch c.CartStore {
	case CartStoreMemory:
	case CartStoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when CART_STORE is redis")
		}
	case CartStorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when CART_STORE is postgres")
		}
	default:
		return fmt.Errorf("CART_STORE must be one of memory, redis, postgres (got %q)", c.CartStore)
	}

	if c.CatalogMaxConcurrent <= 0 {
		c.CatalogMaxConcurrent = 4
	}
	if c.NotificationBuffer <= 0 {
		c.NotificationBuffer = 50
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
