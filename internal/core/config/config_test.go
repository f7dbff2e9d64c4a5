package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedKeys = []string{
	"APP_ENV",
	"LOG_LEVEL",
	"SERVER_PORT",
	"MARKETPLACE_API_URL",
	"MARKETPLACE_API_TOKEN",
	"MARKETPLACE_API_TIMEOUT_SECONDS",
	"REDIS_URL",
	"FILTER_STATE_TTL_HOURS",
	"STRIPE_SECRET_KEY",
	"STRIPE_ENVIRONMENT",
	"TRACKING_REFRESH_SECONDS",
	"PROXY_ENABLED",
	"PROXY_HOSTNAME",
	"PROXY_PORT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range managedKeys {
		os.Unsetenv(key)
	}
	t.Cleanup(func() {
		for _, key := range managedKeys {
			os.Unsetenv(key)
		}
	})
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MARKETPLACE_API_URL", "https://api.marketplace.test")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
}

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	setRequired(t)

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 10*time.Second, cfg.Marketplace.Timeout())
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 720*time.Hour, cfg.Redis.FilterStateTTL())
	assert.Equal(t, "test", cfg.Stripe.Environment)
	assert.Equal(t, time.Minute, cfg.Tracking.RefreshInterval())
	assert.False(t, cfg.Proxy.Enabled)
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	clearEnv(t)
	setRequired(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MARKETPLACE_API_TOKEN", "svc-token")
	t.Setenv("TRACKING_REFRESH_SECONDS", "15")
	t.Setenv("PROXY_ENABLED", "true")
	t.Setenv("PROXY_HOSTNAME", "proxy.internal")
	t.Setenv("PROXY_PORT", "3128")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "https://api.marketplace.test", cfg.Marketplace.URL)
	assert.Equal(t, "svc-token", cfg.Marketplace.Token)
	assert.Equal(t, 15*time.Second, cfg.Tracking.RefreshInterval())
	assert.True(t, cfg.Proxy.Enabled)
	assert.Equal(t, "proxy.internal", cfg.Proxy.Hostname)
	assert.Equal(t, 3128, cfg.Proxy.Port)
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	clearEnv(t)
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
MARKETPLACE_API_URL=https://staging.marketplace.test
STRIPE_SECRET_KEY=sk_test_staging
FILTER_STATE_TTL_HOURS=0
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, "https://staging.marketplace.test", cfg.Marketplace.URL)
	assert.Equal(t, time.Duration(0), cfg.Redis.FilterStateTTL())
}

// TestLoad_ValidationFailure verifies that missing required fields return an error.
func TestLoad_ValidationFailure(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(".")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "missing required configuration")
}

// TestLoad_InvalidRefreshInterval verifies that a non-positive refresh interval is rejected.
func TestLoad_InvalidRefreshInterval(t *testing.T) {
	clearEnv(t)
	setRequired(t)
	t.Setenv("TRACKING_REFRESH_SECONDS", "0")

	cfg, err := Load(".")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "TRACKING_REFRESH_SECONDS")
}
