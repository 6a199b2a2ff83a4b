package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. It is assembled once at
// startup and passed down explicitly; nothing re-reads the environment after
// that.
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration. DatabaseURL selects the postgres backend when
	// present; otherwise the embedded sqlite file at SQLitePath is used.
	DatabaseURL string
	SQLitePath  string

	// Anthropic API configuration (recipe extraction and meal suggestions)
	AnthropicAPIKey string
	AnthropicAPIURL string
	AnthropicModel  string

	// Redis configuration (extraction drafts, AI endpoint rate limiting).
	// Optional: empty disables both features.
	RedisURL string

	// S3 configuration for recipe images. Optional: empty disables uploads.
	S3Bucket  string
	AWSRegion string

	// CORS
	AllowedOrigins []string

	// Logging
	LogLevel    string
	Development bool
}

// Load creates a Config from the environment. A .env file in the working
// directory is honored when present. It fails when a required credential is
// absent so misconfiguration surfaces at startup, not on first use.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerHost:      os.Getenv("SERVER_HOST"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SQLitePath:      getEnv("SQLITE_PATH", "recipes.db"),
		AnthropicAPIURL: getEnv("ANTHROPIC_API_URL", "https://api.anthropic.com/v1/messages"),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),
		RedisURL:        os.Getenv("REDIS_URL"),
		S3Bucket:        os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:       os.Getenv("AWS_REGION"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Development:     os.Getenv("APP_ENV") != "production",
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, strings.TrimSpace(o))
		}
	} else {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	key, err := loadAnthropicKey()
	if err != nil {
		return nil, err
	}
	cfg.AnthropicAPIKey = key

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadAnthropicKey reads the API key from the environment, falling back to a
// key file for deployments that mount secrets.
func loadAnthropicKey() (string, error) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key, nil
	}

	keyFile := os.Getenv("ANTHROPIC_API_KEY_FILE")
	if keyFile == "" {
		return "", fmt.Errorf("ANTHROPIC_API_KEY or ANTHROPIC_API_KEY_FILE must be set")
	}

	keyBytes, err := os.ReadFile(keyFile)
	if err != nil {
		return "", fmt.Errorf("failed to read API key file: %w", err)
	}

	key := strings.TrimSpace(string(keyBytes))
	if key == "" {
		return "", fmt.Errorf("API key file is empty")
	}
	return key, nil
}

func validate(cfg *Config) error {
	if cfg.ServerPort == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if cfg.DatabaseURL == "" && cfg.SQLitePath == "" {
		return fmt.Errorf("either DATABASE_URL or SQLITE_PATH must be set")
	}
	if cfg.S3Bucket != "" && cfg.AWSRegion == "" {
		return fmt.Errorf("AWS_REGION is required when S3_BUCKET_NAME is set")
	}
	return nil
}

// UsesPostgres reports whether the hosted postgres backend was selected.
func (c *Config) UsesPostgres() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
