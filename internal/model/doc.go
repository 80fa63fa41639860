// Package model defines shared data types for the option-chain collector.
//
// All types mirror the option_chain database schema (see internal/database).
//
// Conventions:
//   - Prices, strikes, IV and Greeks: decimal.Decimal (NUMERIC columns)
//   - Open interest, volume and bid/ask quantities: int64 (BIGINT columns)
//   - Batch timestamps: always floored to the start of the capture minute
package model
