// Package biztime provides UTC time utilities.
// All storage and transport use UTC; wall-clock formatting happens at the edges.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// DateString formats a time as a calendar date (YYYY-MM-DD) in UTC.
// The ledger store keeps invoice due dates as bare dates.
func DateString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}