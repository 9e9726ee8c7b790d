package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"mdtable-dashboard/internal/markdown"
	"mdtable-dashboard/internal/service"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort           string `validate:"required,numeric"`
	LogLevel          slog.Level
	LogFormat         string        `validate:"oneof=text json"`
	MaxUploadBytes    int64         `validate:"gt=0"`
	TableMarker       string        `validate:"required"`
	DashboardTitle    string        `validate:"required"`
	SessionTTL        time.Duration `validate:"gte=0"`
	SessionMaxEntries int           `validate:"gte=0"`
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the result.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	// Walk up to find a .env in the project root
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:        getEnv("API_PORT", "9000"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		TableMarker:    getEnv("TABLE_MARKER", markdown.DefaultTableMarker),
		DashboardTitle: getEnv("DASHBOARD_TITLE", service.DefaultDashboardTitle),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}

	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be a valid integer: %w", err)
	}
	cfg.MaxUploadBytes = maxUpload

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL must be a valid duration: %w", err)
	}
	cfg.SessionTTL = ttl

	maxEntries, err := strconv.Atoi(getEnv("SESSION_MAX_ENTRIES", "256"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_MAX_ENTRIES must be a valid integer: %w", err)
	}
	cfg.SessionMaxEntries = maxEntries

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
