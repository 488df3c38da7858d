package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const devJWTSecret = "dev-secret-change-in-production"

var ErrProductionSecret = errors.New("JWT_SECRET must be set in production environment")

// Config holds runtime settings read from the environment.
type Config struct {
	Port            string
	Env             string
	DatabaseDriver  string
	DatabaseURL     string
	DatabaseName    string
	JWTSecret       string
	JWTExpiry       time.Duration
	LogLevel        string
	LogEncoding     string
	CORSOrigin      string
	ShutdownTimeout time.Duration
}

// Load reads the configuration and rejects unsafe production settings.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "5000"),
		Env:             getEnv("ENV", "development"),
		DatabaseDriver:  strings.ToLower(getEnv("DATABASE_DRIVER", "mongo")),
		DatabaseURL:     getEnv("DB_URL", ""),
		DatabaseName:    getEnv("DB_NAME", "todolist"),
		JWTSecret:       getEnv("JWT_SECRET", devJWTSecret),
		JWTExpiry:       getDuration("JWT_EXPIRY", time.Hour),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogEncoding:     getEnv("LOG_ENCODING", "json"),
		CORSOrigin:      getEnv("CORS_ALLOWED_ORIGIN", "*"),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	switch cfg.DatabaseDriver {
	case "mongo", "mysql", "memory":
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = defaultURL(cfg.DatabaseDriver)
	}

	if cfg.Env == "production" && cfg.JWTSecret == devJWTSecret {
		return Config{}, ErrProductionSecret
	}

	return cfg, nil
}

func defaultURL(driver string) string {
	switch driver {
	case "mysql":
		return "root:password@tcp(127.0.0.1:3306)/todolist?parseTime=true"
	case "mongo":
		return "mongodb://127.0.0.1:27017"
	}
	return ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
