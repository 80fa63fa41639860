// Package database provides the PostgreSQL connection pool and the
// option_chain schema bootstrap.
//
// The collector itself assumes the schema exists (cmd/setupdb provisions it)
// and fails loudly when it does not.
package database
