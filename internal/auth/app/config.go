package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/tokoku/storeapi/internal/auth/service"
	"github.com/tokoku/storeapi/pkg/cryptox"
	"github.com/tokoku/storeapi/pkg/jwtx"
)

type Config struct {
	Issuer        string // Optional: issuer claim for tokens (default: storeapi-auth)
	AccessSecret  string // Required: HMAC secret for access tokens
	RefreshSecret string // Required: HMAC secret for refresh tokens, distinct from AccessSecret

	AccessTokenTTL  time.Duration // Optional: access token lifetime (default: 24h)
	RefreshTokenTTL time.Duration // Optional: refresh token lifetime (default: 168h)
	BcryptCost      int           // Optional: bcrypt cost for new hashes (default: 12)

	ResetBaseURL  string        // Required: external base URL for reset links
	ResetTokenTTL time.Duration // Optional: reset token lifetime (default: 30m)
	CallTimeout   time.Duration // Optional: per-operation deadline (default: 5s)

	DatabaseFile string // Optional: path to SQLite database file (default: ./auth.db)

	LimiterBackend     string        // Optional: attempt limiter backend (memory, redis, off) (default: memory)
	RedisAddr          string        // Optional: redis address when LimiterBackend=redis (default: localhost:6379)
	LimiterMaxAttempts int           // Optional: attempts allowed per window (default: 5)
	LimiterWindow      time.Duration // Optional: limiter window (default: 1m)

	HousekeepingInterval time.Duration // Optional: expired token sweep interval (default: 15m)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)
}

var (
	ErrMissingSecret = errors.New("app: AUTH_ACCESS_SECRET and AUTH_REFRESH_SECRET are required")
	ErrSharedSecret  = errors.New("app: access and refresh secrets must differ")
)

func LoadConfig() Config {
	return Config{
		Issuer:        getEnvOrDefault("AUTH_ISSUER", "storeapi-auth"),
		AccessSecret:  os.Getenv("AUTH_ACCESS_SECRET"),
		RefreshSecret: os.Getenv("AUTH_REFRESH_SECRET"),

		AccessTokenTTL:  getEnvDurationOrDefault("AUTH_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL: getEnvDurationOrDefault("AUTH_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		BcryptCost:      getEnvIntOrDefault("AUTH_BCRYPT_COST", cryptox.DefaultCost),

		ResetBaseURL:  os.Getenv("AUTH_RESET_BASE_URL"),
		ResetTokenTTL: getEnvDurationOrDefault("AUTH_RESET_TOKEN_TTL", service.DefaultResetTokenTTL),
		CallTimeout:   getEnvDurationOrDefault("AUTH_CALL_TIMEOUT", service.DefaultCallTimeout),

		DatabaseFile: getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),

		LimiterBackend:     getEnvOrDefault("LIMITER_BACKEND", "memory"),
		RedisAddr:          getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		LimiterMaxAttempts: getEnvIntOrDefault("LIMITER_MAX_ATTEMPTS", 5),
		LimiterWindow:      getEnvDurationOrDefault("LIMITER_WINDOW", time.Minute),

		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", service.DefaultHousekeepingInterval),

		Env:       getEnvOrDefault("ENV", "dev"),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
	}
}

// Validate checks the invariants LoadConfig cannot default away.
func (cfg Config) Validate() error {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return ErrMissingSecret
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return ErrSharedSecret
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
