package valueobjects

import (
	"fmt"
	"time"
)

// Frequency represents how often an agency is paid out
type Frequency string

const (
	// FrequencyWeekly pays out every 7 days
	FrequencyWeekly Frequency = "weekly"
	// FrequencyBiWeekly pays out every 14 days
	FrequencyBiWeekly Frequency = "biweekly"
	// FrequencyMonthly pays out every 30 days
	FrequencyMonthly Frequency = "monthly"
)

// NewFrequency creates a new Frequency from string
func NewFrequency(frequency string) (Frequency, error) {
	f := Frequency(frequency)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid payout frequency: %s", frequency)
	}
	return f, nil
}

// IsValid checks if the frequency is valid
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

// String returns the string representation of the frequency
func (f Frequency) String() string {
	return string(f)
}

// CycleDays returns the length of one payout cycle in days.
// Unrecognized frequencies fall back to the monthly cycle so a
// malformed settings row never blocks an agency forever.
func (f Frequency) CycleDays() int {
	switch f {
	case FrequencyWeekly:
		return 7
	case FrequencyBiWeekly:
		return 14
	case FrequencyMonthly:
		return 30
	default:
		return 30
	}
}

// CycleDuration returns the cycle length as a time.Duration
func (f Frequency) CycleDuration() time.Duration {
	return time.Duration(f.CycleDays()) * 24 * time.Hour
}
