// config/config.go - Application configuration
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every runtime setting. It is loaded once in main and passed
// explicitly to the services and middleware that need it; nothing reads the
// environment at call sites.
type Config struct {
	Port        string
	CORSOrigins string
	AppEnv      string

	DatabaseURL string
	RedisAddr   string

	JWTSecret string

	// AdminEmails is the reviewer allow-list. Empty means every authenticated
	// reviewer is treated as an admin; tighten by listing emails.
	AdminEmails []string

	// StorageTimeout bounds each database round trip.
	StorageTimeout time.Duration

	// CacheTTL is how long read-side lookups stay in redis.
	CacheTTL time.Duration

	// Rate limiting. The general limiter covers every route but /health;
	// the submit limiter additionally throttles the submission endpoint.
	RateLimitEnabled  bool
	RateLimitMax      int
	RateLimitWindow   time.Duration
	SubmitLimitMax    int
	SubmitLimitWindow time.Duration
}

// Load builds a Config from the environment with development defaults.
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "3000"),
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AdminEmails:    splitList(os.Getenv("ADMIN_EMAILS")),
		StorageTimeout: getEnvDuration("STORAGE_TIMEOUT_MS", 5000),
		CacheTTL:       getEnvDuration("CACHE_TTL_MS", 60000),

		RateLimitEnabled:  getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitMax:      getEnvInt("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW_MS", 900000),
		SubmitLimitMax:    getEnvInt("SUBMIT_RATE_LIMIT_MAX", 5),
		SubmitLimitWindow: getEnvDuration("SUBMIT_RATE_LIMIT_WINDOW_MS", 300000),
	}
}

// IsAdmin applies the allow-list rule to an authenticated reviewer email.
func (c *Config) IsAdmin(email string) bool {
	if email == "" {
		return false
	}
	if len(c.AdminEmails) == 0 {
		return true
	}
	for _, admin := range c.AdminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch val {
	case "false", "0", "no":
		return false
	case "true", "1", "yes":
		return true
	}
	return defaultVal
}

func getEnvDuration(key string, defaultMs int) time.Duration {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	return time.Duration(defaultMs) * time.Millisecond
}
