package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort        string
	MySQLDSN          string
	RedisAddr         string
	RedisDB           int
	RedisPass         string
	SessionSecret     string
	SessionCookieName string
	SessionTTL        time.Duration
	QuoteRateLimit    int
	QuoteRateWindow   time.Duration
	RateLimiter       string // "memory" or "redis"
	LogLevel          string
	SwaggerHost       string
}

// Load builds Config from environment with sensible defaults.
// SESSION_SECRET has no default on purpose; boot fails without it.
func Load() *Config {
	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		MySQLDSN:          getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/freightdesk?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "fd_session"),
		SessionTTL:        time.Duration(getEnvInt("SESSION_TTL_HOURS", 168)) * time.Hour,
		QuoteRateLimit:    getEnvInt("QUOTE_RATE_LIMIT", 5),
		QuoteRateWindow:   time.Duration(getEnvInt("QUOTE_RATE_WINDOW_MINUTES", 15)) * time.Minute,
		RateLimiter:       getEnv("RATE_LIMITER", "memory"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		SwaggerHost:       os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
