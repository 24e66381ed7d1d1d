// Package config provides configuration management for the catalog service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Query  QueryConfig
	Stats  StatsConfig
	Auth   AuthConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
}

// StoreConfig holds JSON file store configuration.
type StoreConfig struct {
	// Path is the location of the backing JSON file.
	Path string
	// CreateIfMissing seeds an empty catalog file when none exists.
	CreateIfMissing bool
	// ReloadOnChange re-reads the file when its modification time changes.
	ReloadOnChange bool
}

// QueryConfig holds list/search defaults.
type QueryConfig struct {
	// DefaultLimit applies when the limit query parameter is absent.
	DefaultLimit int
	// MaxLimit caps the limit query parameter.
	MaxLimit int
}

// StatsConfig holds stats aggregation configuration.
type StatsConfig struct {
	// TTL is how long a computed stats snapshot stays valid.
	TTL time.Duration
	// InvalidateOnWrite drops the cached snapshot when an item is inserted.
	InvalidateOnWrite bool
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled bool
	APIKeys map[string]bool
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
		},
		Store: StoreConfig{
			Path:            getEnv("STORE_PATH", "data/items.json"),
			CreateIfMissing: getEnvBool("STORE_CREATE_IF_MISSING", false),
			ReloadOnChange:  getEnvBool("STORE_RELOAD_ON_CHANGE", true),
		},
		Query: QueryConfig{
			DefaultLimit: getEnvInt("QUERY_DEFAULT_LIMIT", 50),
			MaxLimit:     getEnvInt("QUERY_MAX_LIMIT", 500),
		},
		Stats: StatsConfig{
			TTL:               getEnvDuration("STATS_TTL", 5*time.Minute),
			InvalidateOnWrite: getEnvBool("STATS_INVALIDATE_ON_WRITE", true),
		},
		Auth: AuthConfig{
			Enabled: getEnvBool("AUTH_ENABLED", false),
			APIKeys: parseAPIKeys(os.Getenv("API_KEYS")),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseAPIKeys(s string) map[string]bool {
	if s == "" {
		return nil
	}
	keys := strings.Split(s, ",")
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			result[k] = true
		}
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
