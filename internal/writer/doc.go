// Package writer persists capture batches to the option_chain tables.
//
// Each batch is written in a single transaction: all rows insert or none do.
// Inserts are append-only; no upsert or dedup. The display-name to column
// mapping is a static table so it can be audited and tested in isolation
// from fetch logic.
package writer
