package database

import (
	"fmt"
	"net/url"

	"github.com/quantgrid/nse-chain-data/internal/config"
)

// BuildConnString renders cfg as a postgres:// connection URL. The password
// is URL-encoded; every other field is taken as-is, since config loading
// already applies defaults (port, sslmode) before cfg reaches this point.
func BuildConnString(cfg config.DBConfig) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		url.QueryEscape(cfg.Password),
		cfg.Host,
		cfg.Port,
		cfg.Name,
		cfg.SSLMode,
	)
}
