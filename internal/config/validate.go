package config

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if c.API.AccessToken == "" {
		return errors.New("api.access_token is required")
	}
	if c.API.ClientID == "" {
		return errors.New("api.client_id is required")
	}

	if err := c.Database.validate("database"); err != nil {
		return err
	}

	if c.Collector.StrikeWindow < 1 {
		return errors.New("collector.strike_window must be >= 1")
	}
	if c.Collector.PacingDelay < 0 {
		return errors.New("collector.pacing_delay must be >= 0")
	}
	if c.Collector.ErrorBackoff < time.Second {
		return errors.New("collector.error_backoff must be >= 1s")
	}
	if c.Collector.TickOffset < 0 || c.Collector.TickOffset >= time.Minute {
		return errors.New("collector.tick_offset must be in [0, 1m)")
	}
	if _, err := time.LoadLocation(c.Collector.Timezone); err != nil {
		return fmt.Errorf("collector.timezone %q is not a valid location: %w", c.Collector.Timezone, err)
	}

	if c.Log.MaxSizeMB < 1 {
		return errors.New("log.max_size_mb must be >= 1")
	}
	if c.Log.MaxBackups < 0 {
		return errors.New("log.max_backups must be >= 0")
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}

// Location resolves the configured exchange timezone.
func (c *CollectorConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
