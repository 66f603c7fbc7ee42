// Package config loads server settings from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultIndexCacheTTL is how long the rendered index page is served from cache
const DefaultIndexCacheTTL = 20 * time.Second

// Config holds runtime settings for the server and CLI
type Config struct {
	DBDriver      string
	DBPath        string
	DatabaseURL   string
	BaseURL       string
	Port          string
	MediaDir      string
	IndexCacheTTL time.Duration
	LogLevel      string
	Debug         bool
}

// Load reads configuration from environment variables, applying defaults
func Load() Config {
	cfg := Config{
		DBDriver:      getEnv("YATUBE_DB_DRIVER", "sqlite"),
		DBPath:        getEnv("YATUBE_DB_PATH", "yatube.db"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		BaseURL:       getEnv("YATUBE_BASE_URL", "http://localhost:8080"),
		Port:          getEnv("PORT", "8080"),
		MediaDir:      getEnv("YATUBE_MEDIA_DIR", "media"),
		IndexCacheTTL: DefaultIndexCacheTTL,
		LogLevel:      getEnv("YATUBE_LOG_LEVEL", "info"),
	}

	if ttl := os.Getenv("YATUBE_INDEX_CACHE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil && d >= 0 {
			cfg.IndexCacheTTL = d
		}
	}
	if debug, err := strconv.ParseBool(os.Getenv("YATUBE_DEBUG")); err == nil {
		cfg.Debug = debug
	}

	return cfg
}

// DSN returns the connection string for the configured driver
func (c Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
