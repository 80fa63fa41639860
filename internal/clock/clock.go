package clock

import "time"

// Status classifies an instant relative to the trading session.
type Status int

const (
	Open Status = iota
	BeforeOpen
	AfterClose
	Weekend
)

func (s Status) String() string {
	switch s {
	case Open:
		return "open"
	case BeforeOpen:
		return "before_open"
	case AfterClose:
		return "after_close"
	case Weekend:
		return "weekend"
	default:
		return "unknown"
	}
}

// Session open/close thresholds, as seconds past midnight.
const (
	openHour, openMinute, openSecond = 9, 15, 2
	closeHour, closeMinute           = 15, 30

	openOffset  = openHour*3600 + openMinute*60 + openSecond
	closeOffset = closeHour*3600 + closeMinute*60
)

// Session is the result of evaluating an instant against the trading window.
type Session struct {
	Status Status

	// NextCheck is the instant at which the caller should re-evaluate.
	// Zero when Status is Open.
	NextCheck time.Time
}

// Evaluate classifies now against the trading session. The location of now
// is taken as the exchange's wall clock; callers pass time already converted
// to the configured timezone.
func Evaluate(now time.Time) Session {
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return Session{Status: Weekend, NextCheck: openOn(now.AddDate(0, 0, 1))}
	}

	secs := now.Hour()*3600 + now.Minute()*60 + now.Second()
	switch {
	case secs < openOffset:
		return Session{Status: BeforeOpen, NextCheck: openOn(now)}
	case secs > closeOffset:
		return Session{Status: AfterClose, NextCheck: openOn(now.AddDate(0, 0, 1))}
	default:
		return Session{Status: Open}
	}
}

// openOn returns the market-open instant on the calendar day of t.
func openOn(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), openHour, openMinute, openSecond, 0, t.Location())
}
