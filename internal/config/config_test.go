package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:       AppConfig{Environment: "development"},
		Logger:    LoggerConfig{Level: "info"},
		Store:     StoreConfig{Driver: DriverBadger, Path: "/data"},
		Server:    ServerConfig{Port: "8080"},
		RateLimit: RateLimitConfig{PerMinute: 60, Burst: 10},
		Retail:    RetailConfig{Market: "US"},
	}
}

// noEnvFile points Load at a .env path that does not exist.
func noEnvFile(t *testing.T) string {
	t.Helper()
	return "-env-file=" + filepath.Join(t.TempDir(), "missing.env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"production", func(c *Config) { c.App.Environment = "production" }, ""},
		{"sqlite", func(c *Config) { c.Store.Driver = DriverSQLite }, ""},
		{"unknown environment", func(c *Config) { c.App.Environment = "test" }, "invalid environment"},
		{"environment is case sensitive", func(c *Config) { c.App.Environment = "DEVELOPMENT" }, "invalid environment"},
		{"log level case insensitive", func(c *Config) { c.Logger.Level = "DEBUG" }, ""},
		{"unknown log level", func(c *Config) { c.Logger.Level = "trace" }, "invalid log level"},
		{"unknown driver", func(c *Config) { c.Store.Driver = "postgres" }, "invalid store driver"},
		{"empty path", func(c *Config) { c.Store.Path = "" }, "data path"},
		{"empty port", func(c *Config) { c.Server.Port = "" }, "port"},
		{"zero rate", func(c *Config) { c.RateLimit.PerMinute = 0 }, "rate limit"},
		{"negative burst", func(c *Config) { c.RateLimit.Burst = -1 }, "rate limit"},
		{"unknown market", func(c *Config) { c.Retail.Market = "JP" }, "must be one of US, UK, EU"},
		{"eu market", func(c *Config) { c.Retail.Market = "EU" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"ENV", "LOG_LEVEL", "STORE_DRIVER", "DATA_PATH", "SERVER_PORT", "CORS_ORIGINS", "RETAIL_MARKET", "RATE_LIMIT_PER_MINUTE", "RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
	}

	cfg, err := Load([]string{noEnvFile(t)})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, DriverBadger, cfg.Store.Driver)
	assert.Equal(t, filepath.Join(home, "GroceryLists", "data"), cfg.Store.Path)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 120, cfg.RateLimit.PerMinute)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.Equal(t, "US", cfg.Retail.Market)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SERVER_PORT=9000\nRETAIL_MARKET=uk\nLOG_LEVEL=warn\n"), 0o600))

	t.Setenv("DATA_PATH", dir)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("RETAIL_MARKET", "")

	cfg, err := Load([]string{"-env-file=" + envFile, "-store-driver=SQLite", "-cors-origins=http://a.test, http://b.test"})
	require.NoError(t, err)

	// .env fills in unset variables only.
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "UK", cfg.Retail.Market)
	assert.Equal(t, "debug", cfg.Logger.Level)
	// Flags beat everything.
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, dir, cfg.Store.Path)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("DATA_PATH", t.TempDir())

	tests := []struct {
		name string
		args []string
	}{
		{"bad duration", []string{"-read-timeout=soon"}},
		{"bad rate", []string{"-rate-limit=many"}},
		{"bad market", []string{"-market=JP"}},
		{"unknown flag", []string{"-verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(append(tt.args, noEnvFile(t)))
			assert.Error(t, err)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/lists", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "lists"), got)

	got, err = expandPath("", "/fallback")
	require.NoError(t, err)
	assert.Equal(t, "/fallback", got)

	got, err = expandPath("/a/../b", "")
	require.NoError(t, err)
	assert.Equal(t, "/b", got)
}
