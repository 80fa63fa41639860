package config

import "time"

// Config is the root configuration for a collector instance.
type Config struct {
	Instance  InstanceConfig  `yaml:"instance"`
	API       APIConfig       `yaml:"api"`
	Database  DBConfig        `yaml:"database"`
	Collector CollectorConfig `yaml:"collector"`
	Log       LogConfig       `yaml:"log"`
}

// InstanceConfig identifies this collector.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// APIConfig holds Dhan API settings.
type APIConfig struct {
	BaseURL     string        `yaml:"base_url"`
	AccessToken string        `yaml:"access_token"` // access-token header
	ClientID    string        `yaml:"client_id"`    // client-id header
	Timeout     time.Duration `yaml:"timeout"`
}

// DBConfig holds the PostgreSQL connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// CollectorConfig holds cycle driver and fetcher settings.
type CollectorConfig struct {
	StrikeWindow int           `yaml:"strike_window"` // strikes per chain request
	PacingDelay  time.Duration `yaml:"pacing_delay"`  // courtesy delay between chain requests
	ErrorBackoff time.Duration `yaml:"error_backoff"` // sleep after an unhandled cycle failure
	TickOffset   time.Duration `yaml:"tick_offset"`   // offset past the minute boundary for the next cycle
	Timezone     string        `yaml:"timezone"`      // exchange wall-clock timezone
}

// LogConfig holds structured log output settings.
type LogConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	Level      string `yaml:"level"`
}
