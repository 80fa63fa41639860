// Package clock decides whether the NSE cash market is open and, when it is
// not, the instant at which the caller should next check.
//
// The session window is fixed (09:15:02 to 15:30:00, Monday through Friday).
// No holiday calendar is consulted.
package clock
