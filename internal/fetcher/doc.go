// Package fetcher implements the per-underlying snapshot fetch.
//
// One Fetch produces a CaptureBatch per expiry slot: spot price, ATM strike
// (API-selected, or rounded from spot when selection fails), and the strike
// table stamped to the capture minute. Slot failures are isolated: a failed
// slot is logged and absent from the result, and never aborts later slots.
package fetcher
