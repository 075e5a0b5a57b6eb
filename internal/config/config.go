package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string
	PostgresDSN string
	Environment string
	LogLevel    string
	// ViewsFile optionally points at a YAML file overriding or extending
	// the built-in view mappings.
	ViewsFile string
}

// Load reads configuration from .env (when present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:    envOr("HTTP_ADDR", ":8080"),
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		Environment: os.Getenv("ENVIRONMENT"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		ViewsFile:   os.Getenv("VIEWS_FILE"),
	}

	if cfg.PostgresDSN == "" {
		return nil, errors.New("POSTGRES_DSN is not set")
	}

	return cfg, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
