package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP Server
	Port           string
	AllowedOrigins []string
	DemoMode       bool

	// Storage
	DataBackend    string
	DatabaseURL    string
	MigrateOnStart bool
	CacheTTL       time.Duration

	// Auth
	JWTSecret       string
	JWTAudience     string
	ServiceTokenTTL time.Duration

	// Export service
	ExportServiceURL string
	ExportTimeout    time.Duration

	// Dates are evaluated in this zone
	Timezone string
}

func Load() *Config {
	// Load .env file if present
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		DemoMode:       getEnvBool("DEMO_MODE", false),

		DataBackend:    getEnv("DATA_BACKEND", "postgres"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", true),
		CacheTTL:       getEnvDuration("CACHE_TTL", 5*time.Minute),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAudience:     getEnv("JWT_AUDIENCE", ""),
		ServiceTokenTTL: getEnvDuration("SERVICE_TOKEN_TTL", 5*time.Minute),

		ExportServiceURL: getEnv("EXPORT_SERVICE_URL", "http://localhost:8000"),
		ExportTimeout:    getEnvDuration("EXPORT_TIMEOUT", 30*time.Second),

		Timezone: getEnv("TIMEZONE", "UTC"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "postgres":
		if c.DatabaseURL == "" {
			errors = append(errors, "DATABASE_URL is required when using postgres backend")
		}
	case "memory":
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of [postgres memory]", c.DataBackend))
	}

	if c.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	}

	if parsed, err := url.Parse(c.ExportServiceURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid export service URL '%s': %v", c.ExportServiceURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid export service URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if c.ExportTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid export timeout %v: must be at least 1 second", c.ExportTimeout))
	}
	if c.ServiceTokenTTL < 10*time.Second {
		errors = append(errors, fmt.Sprintf("invalid service token TTL %v: must be at least 10 seconds", c.ServiceTokenTTL))
	}
	if c.CacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must not be negative", c.CacheTTL))
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errors = append(errors, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Location resolves Timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
