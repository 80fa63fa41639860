package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// optionChainColumns is the shared column block of both per-underlying tables.
const optionChainColumns = `
	id SERIAL PRIMARY KEY,
	symbol VARCHAR(10),
	expiry_date VARCHAR(20),
	fetch_time TIMESTAMP,
	spot_price DECIMAL(10,2),
	atm_strike DECIMAL(10,2),
	strike_price DECIMAL(10,2),
	-- Call option data
	ce_oi BIGINT,
	ce_chg_in_oi BIGINT,
	ce_volume BIGINT,
	ce_iv DECIMAL(10,2),
	ce_ltp DECIMAL(10,2),
	ce_bid_qty BIGINT,
	ce_bid DECIMAL(10,2),
	ce_ask DECIMAL(10,2),
	ce_ask_qty BIGINT,
	ce_delta DECIMAL(10,4),
	ce_theta DECIMAL(10,4),
	ce_gamma DECIMAL(10,4),
	ce_vega DECIMAL(10,4),
	-- Put option data
	pe_bid_qty BIGINT,
	pe_bid DECIMAL(10,2),
	pe_ask DECIMAL(10,2),
	pe_ask_qty BIGINT,
	pe_ltp DECIMAL(10,2),
	pe_iv DECIMAL(10,2),
	pe_volume BIGINT,
	pe_chg_in_oi BIGINT,
	pe_oi BIGINT,
	pe_delta DECIMAL(10,4),
	pe_theta DECIMAL(10,4),
	pe_gamma DECIMAL(10,4),
	pe_vega DECIMAL(10,4),
	timestamp TIME,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
`

var schemaStatements = []string{
	`CREATE SCHEMA IF NOT EXISTS option_chain`,

	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS option_chain.nifty_option_chain (%s)`, optionChainColumns),
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS option_chain.banknifty_option_chain (%s)`, optionChainColumns),

	`CREATE INDEX IF NOT EXISTS idx_nifty_expiry
		ON option_chain.nifty_option_chain(expiry_date)`,
	`CREATE INDEX IF NOT EXISTS idx_nifty_timestamp
		ON option_chain.nifty_option_chain(timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_banknifty_expiry
		ON option_chain.banknifty_option_chain(expiry_date)`,
	`CREATE INDEX IF NOT EXISTS idx_banknifty_timestamp
		ON option_chain.banknifty_option_chain(timestamp)`,
}

// EnsureSchema creates the option_chain schema, both per-underlying tables
// and their expiry/timestamp indexes. All statements are idempotent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}

// ListTables returns the table names present in the option_chain schema.
func ListTables(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	rows, err := pool.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'option_chain'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}
