package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DatabaseURL        string
	AppEnv             string
	BaseURL            string
	LogLevel           string
	LogFormat          string
	CORSAllowedOrigins []string
	CORSMaxAge         int
	TrackRateLimit     int // requests per IP per minute, 0 disables
	DBMaxOpenConns     int
}

// Storage backends selected by the DATABASE_URL scheme.
const (
	StorageSQLite   = "sqlite"
	StorageLibSQL   = "libsql"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", "file:visits.sqlite"),
		AppEnv:             getEnv("APP_ENV", "local"),
		BaseURL:            strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		CORSMaxAge:         getEnvInt("CORS_MAX_AGE", 86400),
		TrackRateLimit:     getEnvInt("TRACK_RATE_LIMIT", 120),
		DBMaxOpenConns:     getEnvInt("DB_MAX_OPEN_CONNS", 10),
	}
}

// Storage reports which adapter DatabaseURL selects.
func (c *Config) Storage() string {
	switch {
	case strings.HasPrefix(c.DatabaseURL, "postgres://"), strings.HasPrefix(c.DatabaseURL, "postgresql://"):
		return StoragePostgres
	case strings.HasPrefix(c.DatabaseURL, "libsql://"), strings.HasPrefix(c.DatabaseURL, "wss://"):
		return StorageLibSQL
	case strings.HasPrefix(c.DatabaseURL, "memory:"):
		return StorageMemory
	default:
		return StorageSQLite
	}
}

func (c *Config) IsLocal() bool {
	return c.AppEnv == "local"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
