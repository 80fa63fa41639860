// Package driver implements the collection cycle state machine.
//
// The loop: consult the market clock and sleep until open; when open, fetch
// and write each underlying sequentially in fixed priority order (NIFTY
// before BANKNIFTY); sleep until the next minute boundary plus a small
// offset; repeat. An unhandled failure escaping a cycle backs off for a
// fixed duration and resumes from the clock check. Cycles never overlap.
package driver
