package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported values of DB_DRIVER.
const (
	DriverPGX      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

type Config struct {
	Addr           string
	DatabaseURL    string
	DBDriver       string
	QueryTimeout   time.Duration
	MaxConns       int32
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
	EnableHSTS     bool
}

// LoadEnvFiles reads .env and .env.local without overriding variables already set
// by the runtime (e.g. Docker).
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Addr:        getEnv("APP_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverPGX)),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "json")),
		EnableHSTS:  os.Getenv("ENABLE_HSTS") == "true",
	}

	if cfg.DatabaseURL == "" {
		return Config{}, ErrMissingDatabaseURL
	}

	switch cfg.DBDriver {
	case DriverPGX, DriverPostgres, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	timeout, err := time.ParseDuration(getEnv("DB_QUERY_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_QUERY_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("DB_QUERY_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.QueryTimeout = timeout

	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "8"), 10, 32)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_CONNS: %w", err)
	}
	if maxConns < 1 {
		return Config{}, fmt.Errorf("DB_MAX_CONNS must be at least 1, got %d", maxConns)
	}
	cfg.MaxConns = int32(maxConns)

	cfg.AllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
