package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/bloomquiz/internal/api"
)

// Config holds all client configuration.
type Config struct {
	APIURL        string
	APITimeout    time.Duration
	RetryAttempts int
	DBPath        string // empty = store.DefaultDBPath
	LogLevel      string
	LogFormat     string // "json" or "pretty"
	LogFile       string // empty = DefaultLogPath
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	d := api.DefaultConfig()
	return &Config{
		APIURL:        d.BaseURL,
		APITimeout:    d.Timeout,
		RetryAttempts: d.Retry.MaxAttempts,
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// Load reads configuration from BLOOMQUIZ_* environment variables with
// sensible defaults. It loads .env file if present but does not fail if
// missing.
func Load() *Config {
	_ = godotenv.Load()

	d := DefaultConfig()
	return &Config{
		APIURL:        getEnv("BLOOMQUIZ_API_URL", d.APIURL),
		APITimeout:    getEnvDuration("BLOOMQUIZ_API_TIMEOUT", d.APITimeout),
		RetryAttempts: getEnvInt("BLOOMQUIZ_RETRY_ATTEMPTS", d.RetryAttempts),
		DBPath:        getEnv("BLOOMQUIZ_DB", ""),
		LogLevel:      getEnv("BLOOMQUIZ_LOG_LEVEL", d.LogLevel),
		LogFormat:     getEnv("BLOOMQUIZ_LOG_FORMAT", d.LogFormat),
		LogFile:       getEnv("BLOOMQUIZ_LOG_FILE", ""),
	}
}

// Validate checks that the configuration can build a working client.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", c.APIURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API URL %q: want http(s)://host[:port]", c.APIURL)
	}
	if c.APITimeout <= 0 {
		return errors.New("API timeout must be positive")
	}
	if c.RetryAttempts < 1 {
		return errors.New("retry attempts must be at least 1")
	}
	return nil
}

// APIConfig converts the configuration into api client settings.
func (c *Config) APIConfig() api.Config {
	cfg := api.DefaultConfig()
	cfg.BaseURL = c.APIURL
	cfg.Timeout = c.APITimeout
	cfg.Retry.MaxAttempts = c.RetryAttempts
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
