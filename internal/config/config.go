package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

var (
	ErrMissingAPIKey   = errors.New("GOOGLE_API_KEY is required")
	ErrMissingEngineID = errors.New("GOOGLE_CSE_ID is required")
)

type Config struct {
	Google    GoogleConfig
	Server    ServerConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Search    SearchConfig
	Log       LogConfig
}

type GoogleConfig struct {
	APIKey   string
	EngineID string
	BaseURL  string
	Timeout  time.Duration
}

type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type CacheConfig struct {
	TTL time.Duration
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

type SearchConfig struct {
	DefaultNumResults int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Google: GoogleConfig{
			APIKey:   os.Getenv("GOOGLE_API_KEY"),
			EngineID: os.Getenv("GOOGLE_CSE_ID"),
			BaseURL:  getEnvOrDefault("GOOGLE_BASE_URL", "https://www.googleapis.com/customsearch/v1"),
			Timeout:  time.Duration(getEnvIntOrDefault("HTTP_TIMEOUT_SEC", 30)) * time.Second,
		},
		Server: ServerConfig{
			Addr:            getEnvOrDefault("LISTEN_ADDR", ":8500"),
			ShutdownTimeout: time.Duration(getEnvIntOrDefault("SHUTDOWN_TIMEOUT_SEC", 10)) * time.Second,
		},
		Cache: CacheConfig{
			TTL: time.Duration(getEnvIntOrDefault("CACHE_TTL_SEC", 3600)) * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvIntOrDefault("RATE_LIMIT_PER_MINUTE", 100),
		},
		Search: SearchConfig{
			DefaultNumResults: getEnvIntOrDefault("DEFAULT_NUM_RESULTS", 10),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Google.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Google.EngineID == "" {
		return ErrMissingEngineID
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
