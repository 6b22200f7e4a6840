package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:            "8081",
		SQLiteDBPath:    ":memory:",
		TokenSecret:     strings.Repeat("s", 32),
		TokenTTL:        24 * time.Hour,
		BcryptCost:      10,
		DefaultPageSize: 20,
		MaxPageSize:     100,
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 20, cfg.DefaultPageSize)
	assert.Equal(t, 100, cfg.MaxPageSize)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("BCRYPT_COST", "12")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestValidateAccepts(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{"non-numeric port", func(c *Config) { c.Port = "abc" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"empty db path", func(c *Config) { c.SQLiteDBPath = "" }, "database path"},
		{"missing secret", func(c *Config) { c.TokenSecret = "" }, "TOKEN_SECRET"},
		{"short secret", func(c *Config) { c.TokenSecret = "short" }, "too short"},
		{"ttl too small", func(c *Config) { c.TokenTTL = time.Second }, "token TTL"},
		{"ttl too large", func(c *Config) { c.TokenTTL = 31 * 24 * time.Hour }, "token TTL"},
		{"weak bcrypt cost", func(c *Config) { c.BcryptCost = 4 }, "bcrypt cost"},
		{"page size zero", func(c *Config) { c.DefaultPageSize = 0 }, "default page size"},
		{"max below default", func(c *Config) { c.MaxPageSize = 10 }, "max page size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.TokenSecret = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
	assert.Contains(t, err.Error(), "TOKEN_SECRET")
}
