package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	TikHub    TikHubConfig
	Server    ServerConfig
	Redis     RedisConfig
	Postgres  PostgresConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
}

type TikHubConfig struct {
	APIKey  string
	BaseURL string
}

type ServerConfig struct {
	Host    string
	Port    int
	GinMode string
	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is honoured.
	// Empty means the peer address is the client.
	TrustedProxies []string
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// Enabled reports whether a database was configured. The library endpoints are
// served only when it is.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

type RateLimitConfig struct {
	Enabled         bool
	SearchPerMinute int
	TrendsPerMinute int
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TikHub: TikHubConfig{
			APIKey:  strings.TrimSpace(getEnv("TIKHUB_API_KEY", "")),
			BaseURL: strings.TrimRight(getEnv("TIKHUB_BASE_URL", "https://api.tikhub.io"), "/"),
		},
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvInt("PORT", 8080),
			GinMode:        getEnv("GIN_MODE", "release"),
			TrustedProxies: ParseCommaSeparated(getEnv("TRUSTED_PROXIES", "")),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", ""),
			Port:     getEnvInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Database: getEnv("POSTGRES_DB", "beee_media"),
		},
		RateLimit: RateLimitConfig{
			Enabled:         getEnvBool("RATE_LIMIT_ENABLED", true),
			SearchPerMinute: getEnvInt("RATE_LIMIT_SEARCH_PER_MINUTE", 30),
			TrendsPerMinute: getEnvInt("RATE_LIMIT_TRENDS_PER_MINUTE", 20),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TikHub.APIKey == "" {
		return fmt.Errorf("TIKHUB_API_KEY is required")
	}
	if c.TikHub.BaseURL == "" {
		return fmt.Errorf("TIKHUB_BASE_URL must not be empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.SearchPerMinute <= 0 || c.RateLimit.TrendsPerMinute <= 0 {
			return fmt.Errorf("rate limits must be positive when RATE_LIMIT_ENABLED is true")
		}
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required when RATE_LIMIT_ENABLED is true")
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// ParseCommaSeparated splits a comma separated list, dropping blank entries.
func ParseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
