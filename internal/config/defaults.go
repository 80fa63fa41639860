package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL    = "https://api.dhan.co/v2"
	DefaultAPITimeout = 30 * time.Second

	DefaultDBPort    = 5432
	DefaultDBSSLMode = "prefer"
	DefaultMaxConns  = 4
	DefaultMinConns  = 1

	DefaultStrikeWindow = 50
	DefaultPacingDelay  = 100 * time.Millisecond
	DefaultErrorBackoff = 60 * time.Second
	DefaultTickOffset   = 2 * time.Second
	DefaultTimezone     = "Asia/Kolkata"

	DefaultLogFile       = "option_chain.log"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 5
	DefaultLogLevel      = "info"
)

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Collector defaults
	if c.Collector.StrikeWindow == 0 {
		c.Collector.StrikeWindow = DefaultStrikeWindow
	}
	if c.Collector.PacingDelay == 0 {
		c.Collector.PacingDelay = DefaultPacingDelay
	}
	if c.Collector.ErrorBackoff == 0 {
		c.Collector.ErrorBackoff = DefaultErrorBackoff
	}
	if c.Collector.TickOffset == 0 {
		c.Collector.TickOffset = DefaultTickOffset
	}
	if c.Collector.Timezone == "" {
		c.Collector.Timezone = DefaultTimezone
	}

	// Log defaults
	if c.Log.File == "" {
		c.Log.File = DefaultLogFile
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = DefaultLogMaxBackups
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
