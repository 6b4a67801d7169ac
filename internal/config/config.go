package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string `env:"ENV" envDefault:"development"`
	Port           string `env:"PORT" envDefault:"8080"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	// Logging Configuration
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"LOG_FILE"`
	LogMaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAgeDays int    `env:"LOG_MAX_AGE_DAYS" envDefault:"7"`

	// Database Configuration
	DatabaseURL string `env:"DATABASE_URL" envDefault:"host=localhost port=5432 user=postgres password=postgres dbname=rosterhub sslmode=disable"`

	// Firebase Configuration
	FirebaseCredentialsFile string `env:"FIREBASE_CREDENTIALS_FILE" envDefault:"service-account.json"`

	// Rate limiting
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"20"`

	// Membership store eviction
	StoreIdleMinutes int `env:"STORE_IDLE_MINUTES" envDefault:"60"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// Try the environment-specific .env file first, then the generic one.
	envLocations := []string{".env"}
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}
	for _, loc := range envLocations {
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.LogFile == "" {
		if cfg.Environment == "production" {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}
