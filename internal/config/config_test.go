package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{
		"BLOOMQUIZ_API_URL", "BLOOMQUIZ_API_TIMEOUT", "BLOOMQUIZ_RETRY_ATTEMPTS",
		"BLOOMQUIZ_DB", "BLOOMQUIZ_LOG_LEVEL", "BLOOMQUIZ_LOG_FORMAT", "BLOOMQUIZ_LOG_FILE",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Empty(t, cfg.DBPath)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BLOOMQUIZ_API_URL", "https://quiz.example.com")
	t.Setenv("BLOOMQUIZ_API_TIMEOUT", "2s")
	t.Setenv("BLOOMQUIZ_RETRY_ATTEMPTS", "5")
	t.Setenv("BLOOMQUIZ_LOG_LEVEL", "debug")

	cfg := Load()
	assert.Equal(t, "https://quiz.example.com", cfg.APIURL)
	assert.Equal(t, 2*time.Second, cfg.APITimeout)
	assert.Equal(t, 5, cfg.RetryAttempts)
	assert.Equal(t, "debug", cfg.LogLevel)

	apiCfg := cfg.APIConfig()
	assert.Equal(t, "https://quiz.example.com", apiCfg.BaseURL)
	assert.Equal(t, 2*time.Second, apiCfg.Timeout)
	assert.Equal(t, 5, apiCfg.Retry.MaxAttempts)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BLOOMQUIZ_API_TIMEOUT", "soon")
	t.Setenv("BLOOMQUIZ_RETRY_ATTEMPTS", "many")

	cfg := Load()
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, 3, cfg.RetryAttempts)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no scheme", func(c *Config) { c.APIURL = "localhost:5000" }},
		{"ftp", func(c *Config) { c.APIURL = "ftp://example.com" }},
		{"zero timeout", func(c *Config) { c.APITimeout = 0 }},
		{"zero attempts", func(c *Config) { c.RetryAttempts = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
