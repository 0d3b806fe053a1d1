package config

import "time"

// Config is the top-level site configuration, corresponding to portfolio.yaml.
type Config struct {
	Server   ServerConfig   `yaml:"server" koanf:"server"`
	Log      LogConfig      `yaml:"log" koanf:"log"`
	Content  ContentConfig  `yaml:"content" koanf:"content"`
	Features Features       `yaml:"features" koanf:"features"`
	Database DatabaseConfig `yaml:"database" koanf:"database"`
	Contact  ContactConfig  `yaml:"contact" koanf:"contact"`
	Admin    AdminConfig    `yaml:"admin" koanf:"admin"`
	Metrics  MetricsConfig  `yaml:"metrics" koanf:"metrics"`
	Sessions SessionConfig  `yaml:"sessions" koanf:"sessions"`
}

type ServerConfig struct {
	Host string `yaml:"host" koanf:"host"`
	Port int    `yaml:"port" koanf:"port"`
	// Mode is the gin mode: debug, release or test.
	Mode          string `yaml:"mode" koanf:"mode"`
	SecureCookies bool   `yaml:"secure_cookies" koanf:"secure_cookies"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" koanf:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

type ContentConfig struct {
	// Dir overrides the embedded content when set.
	Dir   string `yaml:"dir" koanf:"dir"`
	Watch bool   `yaml:"watch" koanf:"watch"`

	// Assets is the directory of images and documents served under /assets.
	Assets string `yaml:"assets" koanf:"assets"`
}

// Features switches optional site sections on and off.
type Features struct {
	Blog     bool `yaml:"blog" koanf:"blog"`
	NotFound bool `yaml:"not_found" koanf:"not_found"`
}

type DatabaseConfig struct {
	Path            string `yaml:"path" koanf:"path"`
	RetentionMonths int    `yaml:"retention_months" koanf:"retention_months"`
}

type ContactConfig struct {
	// Relay is a comma separated list of log, smtp and store.
	Relay string     `yaml:"relay" koanf:"relay"`
	To    string     `yaml:"to" koanf:"to"`
	SMTP  SMTPConfig `yaml:"smtp" koanf:"smtp"`
}

type SMTPConfig struct {
	Host string `yaml:"host" koanf:"host"`
	Port string `yaml:"port" koanf:"port"`
	User string `yaml:"user" koanf:"user"`
	Pass string `yaml:"pass" koanf:"pass"`
}

type AdminConfig struct {
	Enabled  bool   `yaml:"enabled" koanf:"enabled"`
	Username string `yaml:"username" koanf:"username"`
	Password string `yaml:"password" koanf:"password"`
	// Tracking records hashed page views for the dashboard.
	Tracking bool `yaml:"tracking" koanf:"tracking"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Path    string `yaml:"path" koanf:"path"`
}

type SessionConfig struct {
	IdleTimeout   time.Duration `yaml:"idle_timeout" koanf:"idle_timeout"`
	SweepInterval time.Duration `yaml:"sweep_interval" koanf:"sweep_interval"`
	// UntouchedIdle expires sessions that never posted an interaction event.
	UntouchedIdle time.Duration `yaml:"untouched_idle" koanf:"untouched_idle"`
	MaxLive       int           `yaml:"max_live" koanf:"max_live"`
}
