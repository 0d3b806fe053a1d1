// Package config loads the site configuration from defaults, an optional YAML
// file and the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides: PORTFOLIO_SERVER__PORT sets
// server.port. A double underscore separates levels.
const EnvPrefix = "PORTFOLIO_"

// legacyEnv maps the plain variables of earlier deployments onto config keys.
var legacyEnv = map[string]string{
	"PORT":           "server.port",
	"GIN_MODE":       "server.mode",
	"SMTP_HOST":      "contact.smtp.host",
	"SMTP_PORT":      "contact.smtp.port",
	"SMTP_USER":      "contact.smtp.user",
	"SMTP_PASS":      "contact.smtp.pass",
	"TO_EMAIL":       "contact.to",
	"ADMIN_USERNAME": "admin.username",
	"ADMIN_PASSWORD": "admin.password",
}

// Load reads configuration from path if it exists, then overlays the legacy
// variables and finally PORTFOLIO_* overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return legacyEnv[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("loading legacy env: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

var validModes = map[string]bool{"debug": true, "release": true, "test": true}

var validRelays = map[string]bool{"log": true, "smtp": true, "store": true}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if !validModes[c.Server.Mode] {
		return fmt.Errorf("invalid server.mode %q: must be one of debug, release, test", c.Server.Mode)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log.format %q: must be text or json", c.Log.Format)
	}
	if c.Database.RetentionMonths < 1 {
		return fmt.Errorf("database.retention_months must be at least 1")
	}
	relays := c.Relays()
	if len(relays) == 0 {
		return fmt.Errorf("contact.relay is required")
	}
	for _, r := range relays {
		if !validRelays[r] {
			return fmt.Errorf("invalid contact.relay %q: must be log, smtp or store", r)
		}
		if r == "smtp" && c.Contact.To == "" {
			return fmt.Errorf("contact.to is required for the smtp relay")
		}
		if r == "store" && c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the store relay")
		}
	}
	if c.Admin.Enabled && (c.Admin.Username == "" || c.Admin.Password == "") {
		return fmt.Errorf("admin.username and admin.password are required when admin is enabled")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /")
	}
	if c.Sessions.IdleTimeout <= 0 || c.Sessions.SweepInterval <= 0 {
		return fmt.Errorf("sessions.idle_timeout and sessions.sweep_interval must be positive")
	}
	if c.Sessions.UntouchedIdle < 0 || c.Sessions.MaxLive < 0 {
		return fmt.Errorf("sessions.untouched_idle and sessions.max_live must not be negative")
	}
	return nil
}

// Relays returns the configured contact relays.
func (c *Config) Relays() []string {
	var out []string
	for _, r := range strings.Split(c.Contact.Relay, ",") {
		if r = strings.TrimSpace(strings.ToLower(r)); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// NeedsDatabase reports whether any enabled component stores data.
func (c *Config) NeedsDatabase() bool {
	if c.Admin.Enabled {
		return true
	}
	for _, r := range c.Relays() {
		if r == "store" {
			return true
		}
	}
	return false
}

// LogLevel parses log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}
	return l, nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
