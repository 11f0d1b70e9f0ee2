package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds process configuration sourced from the environment.
type Config struct {
	Stage       string
	LogLevel    string
	DatabaseURL string
}

// Load reads configuration from the environment, with a best-effort .env
// fallback for local development.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional outside local development
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{
		Stage:       getEnv("STAGE", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
