package config

import "time"

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Mode:            "release",
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Content: ContentConfig{
			Assets: "assets",
		},
		Features: Features{
			Blog:     false,
			NotFound: true,
		},
		Database: DatabaseConfig{
			Path:            "portfolio.db",
			RetentionMonths: 12,
		},
		Contact: ContactConfig{
			Relay: "log",
			SMTP: SMTPConfig{
				Host: "smtp.gmail.com",
				Port: "587",
			},
		},
		Admin: AdminConfig{
			Enabled:  true,
			Username: "admin",
			Password: "admin123",
			Tracking: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Sessions: SessionConfig{
			IdleTimeout:   30 * time.Minute,
			SweepInterval: 5 * time.Minute,
			UntouchedIdle: 2 * time.Minute,
			MaxLive:       10000,
		},
	}
}

// DefaultAdminPassword reports whether the admin password was left at its
// development default.
func (c *Config) DefaultAdminPassword() bool {
	return c.Admin.Password == DefaultConfig().Admin.Password
}
