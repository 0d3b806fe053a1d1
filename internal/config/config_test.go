package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.False(t, cfg.Features.Blog)
	assert.True(t, cfg.Features.NotFound)
	assert.Equal(t, []string{"log"}, cfg.Relays())
	assert.True(t, cfg.DefaultAdminPassword())
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 12, cfg.Database.RetentionMonths)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  mode: debug
features:
  blog: true
sessions:
  idle_timeout: 10m
contact:
  relay: log, store
`), 0o644))

	t.Setenv("PORTFOLIO_LOG__LEVEL", "debug")
	t.Setenv("PORTFOLIO_FEATURES__NOT_FOUND", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.True(t, cfg.Features.Blog)
	assert.False(t, cfg.Features.NotFound)
	assert.Equal(t, 10*time.Minute, cfg.Sessions.IdleTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Sessions.SweepInterval)
	assert.Equal(t, []string{"log", "store"}, cfg.Relays())

	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLegacyEnv(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("TO_EMAIL", "owner@example.com")
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "me@example.com", cfg.Contact.SMTP.User)
	assert.Equal(t, "owner@example.com", cfg.Contact.To)
	assert.False(t, cfg.DefaultAdminPassword())
}

func TestPrefixedEnvBeatsLegacy(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("PORTFOLIO_SERVER__PORT", "4000")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 0 }},
		{"mode", func(c *Config) { c.Server.Mode = "prod" }},
		{"level", func(c *Config) { c.Log.Level = "loud" }},
		{"format", func(c *Config) { c.Log.Format = "xml" }},
		{"retention", func(c *Config) { c.Database.RetentionMonths = 0 }},
		{"relay", func(c *Config) { c.Contact.Relay = "pigeon" }},
		{"empty relay", func(c *Config) { c.Contact.Relay = " , " }},
		{"smtp without to", func(c *Config) { c.Contact.Relay = "smtp" }},
		{"admin creds", func(c *Config) { c.Admin.Password = "" }},
		{"metrics path", func(c *Config) { c.Metrics.Path = "metrics" }},
		{"sessions", func(c *Config) { c.Sessions.IdleTimeout = 0 }},
		{"session limit", func(c *Config) { c.Sessions.MaxLive = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNeedsDatabase(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.NeedsDatabase())
	cfg.Admin.Enabled = false
	assert.False(t, cfg.NeedsDatabase())
	cfg.Contact.Relay = "store"
	assert.True(t, cfg.NeedsDatabase())
}
