// Package dhan is a client for the Dhan v2 market-data REST API.
//
// It exposes the three operations the collector consumes: index spot price,
// the ordered expiry list, and the per-expiry option chain (quotes, OI, IV
// and Greeks per strike), plus ATM strike selection built on top of them.
//
// Requests are not retried; a failed call surfaces to the caller, which
// decides whether to fall back or skip the slot for the current cycle.
package dhan
