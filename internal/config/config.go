// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	appValidation "github.com/allisson/users/internal/validation"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// UserMinAge is the minimum age in 365-day years required to create a user.
	UserMinAge int

	// ShutdownTimeout bounds the graceful shutdown of the servers.
	ShutdownTimeout time.Duration

	// RateLimitEnabled indicates whether per-IP rate limiting of the API is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second for each client IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for each client IP.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Users
		UserMinAge: env.GetInt("USER_MIN_AGE", 18),

		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// Rate Limiting (per client IP)
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "users"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate rejects configurations the servers cannot run with.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.UserMinAge, validation.Min(0)),
		validation.Field(&c.ShutdownTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.RateLimitRequestsPerSec,
			validation.When(c.RateLimitEnabled, validation.Required),
		),
		validation.Field(&c.RateLimitBurst,
			validation.When(c.RateLimitEnabled, validation.Required, validation.Min(1)),
		),
		validation.Field(&c.MetricsNamespace, validation.When(c.MetricsEnabled, validation.Required)),
		validation.Field(&c.MetricsPort,
			validation.When(c.MetricsEnabled, validation.Required, validation.Min(1), validation.Max(65535)),
		),
	)
	return appValidation.WrapValidationError(err)
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
