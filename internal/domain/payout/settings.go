package payout

import (
	"fmt"
	"time"

	vo "liken/internal/domain/payout/valueobjects"
	"liken/internal/shared/biztime"
)

// PayoutSettings captures how and when a single agency gets paid.
type PayoutSettings struct {
	agencyID          string
	frequency         vo.Frequency
	minThresholdCents int64
	enabled           bool
	lastPayoutAt      *time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

func NewPayoutSettings(agencyID string, frequency vo.Frequency, minThresholdCents int64) (*PayoutSettings, error) {
	if agencyID == "" {
		return nil, fmt.Errorf("agency ID is required")
	}
	if !frequency.IsValid() {
		return nil, fmt.Errorf("invalid payout frequency: %s", frequency)
	}
	if minThresholdCents < 0 {
		return nil, fmt.Errorf("minimum threshold cannot be negative")
	}

	now := biztime.NowUTC()
	return &PayoutSettings{
		agencyID:          agencyID,
		frequency:         frequency,
		minThresholdCents: minThresholdCents,
		enabled:           true,
		createdAt:         now,
		updatedAt:         now,
	}, nil
}

// ReconstructPayoutSettings rebuilds a settings aggregate from stored state.
func ReconstructPayoutSettings(
	agencyID string,
	frequency vo.Frequency,
	minThresholdCents int64,
	enabled bool,
	lastPayoutAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) *PayoutSettings {
	return &PayoutSettings{
		agencyID:          agencyID,
		frequency:         frequency,
		minThresholdCents: minThresholdCents,
		enabled:           enabled,
		lastPayoutAt:      lastPayoutAt,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// NextDueAt returns the instant at which the next payout becomes due.
// An agency that has never been paid is due one full cycle after now,
// which seeds the schedule without an immediate payout on enrollment.
func (s *PayoutSettings) NextDueAt(now time.Time) time.Time {
	base := now
	if s.lastPayoutAt != nil {
		base = *s.lastPayoutAt
	}
	return base.Add(s.frequency.CycleDuration())
}

// IsDue reports whether a payout should be attempted at now.
func (s *PayoutSettings) IsDue(now time.Time) bool {
	return !now.Before(s.NextDueAt(now))
}

// MarkPaidAt records a completed payout, advancing the schedule.
func (s *PayoutSettings) MarkPaidAt(paidAt time.Time) {
	t := paidAt.UTC()
	s.lastPayoutAt = &t
	s.updatedAt = biztime.NowUTC()
}

// UpdateSchedule changes the frequency and threshold for future cycles.
func (s *PayoutSettings) UpdateSchedule(frequency vo.Frequency, minThresholdCents int64) error {
	if !frequency.IsValid() {
		return fmt.Errorf("invalid payout frequency: %s", frequency)
	}
	if minThresholdCents < 0 {
		return fmt.Errorf("minimum threshold cannot be negative")
	}
	s.frequency = frequency
	s.minThresholdCents = minThresholdCents
	s.updatedAt = biztime.NowUTC()
	return nil
}

// Enable turns automatic payouts on for this agency.
func (s *PayoutSettings) Enable() {
	s.enabled = true
	s.updatedAt = biztime.NowUTC()
}

// Disable turns automatic payouts off for this agency.
func (s *PayoutSettings) Disable() {
	s.enabled = false
	s.updatedAt = biztime.NowUTC()
}

func (s *PayoutSettings) AgencyID() string { return s.agencyID }

func (s *PayoutSettings) Frequency() vo.Frequency { return s.frequency }

func (s *PayoutSettings) MinThresholdCents() int64 { return s.minThresholdCents }

func (s *PayoutSettings) Enabled() bool { return s.enabled }

func (s *PayoutSettings) LastPayoutAt() *time.Time { return s.lastPayoutAt }

func (s *PayoutSettings) CreatedAt() time.Time { return s.createdAt }

func (s *PayoutSettings) UpdatedAt() time.Time { return s.updatedAt }
