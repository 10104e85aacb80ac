package payout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "liken/internal/domain/payout/valueobjects"
)

func TestNewPayoutSettings(t *testing.T) {
	tests := []struct {
		name      string
		agencyID  string
		frequency vo.Frequency
		threshold int64
		wantErr   bool
	}{
		{name: "valid", agencyID: "agency-1", frequency: vo.FrequencyMonthly, threshold: 5000},
		{name: "zero threshold allowed", agencyID: "agency-1", frequency: vo.FrequencyWeekly, threshold: 0},
		{name: "missing agency", agencyID: "", frequency: vo.FrequencyMonthly, threshold: 5000, wantErr: true},
		{name: "invalid frequency", agencyID: "agency-1", frequency: vo.Frequency("daily"), threshold: 5000, wantErr: true},
		{name: "negative threshold", agencyID: "agency-1", frequency: vo.FrequencyMonthly, threshold: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewPayoutSettings(tt.agencyID, tt.frequency, tt.threshold)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.agencyID, s.AgencyID())
			assert.True(t, s.Enabled())
			assert.Nil(t, s.LastPayoutAt())
		})
	}
}

func TestPayoutSettingsNextDueAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	lastPaid := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		frequency    vo.Frequency
		lastPayoutAt *time.Time
		want         time.Time
	}{
		{
			name:         "weekly from last payout",
			frequency:    vo.FrequencyWeekly,
			lastPayoutAt: &lastPaid,
			want:         lastPaid.Add(7 * 24 * time.Hour),
		},
		{
			name:         "biweekly from last payout",
			frequency:    vo.FrequencyBiWeekly,
			lastPayoutAt: &lastPaid,
			want:         lastPaid.Add(14 * 24 * time.Hour),
		},
		{
			name:         "monthly from last payout",
			frequency:    vo.FrequencyMonthly,
			lastPayoutAt: &lastPaid,
			want:         lastPaid.Add(30 * 24 * time.Hour),
		},
		{
			name:         "never paid uses now as baseline",
			frequency:    vo.FrequencyMonthly,
			lastPayoutAt: nil,
			want:         now.Add(30 * 24 * time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ReconstructPayoutSettings("agency-1", tt.frequency, 5000, true, tt.lastPayoutAt, lastPaid, lastPaid)
			assert.Equal(t, tt.want, s.NextDueAt(now))
		})
	}
}

func TestPayoutSettingsIsDue(t *testing.T) {
	lastPaid := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s := ReconstructPayoutSettings("agency-1", vo.FrequencyMonthly, 5000, true, &lastPaid, lastPaid, lastPaid)

	t.Run("one day before the cycle ends", func(t *testing.T) {
		assert.False(t, s.IsDue(lastPaid.Add(29*24*time.Hour)))
	})

	t.Run("exactly at the due instant", func(t *testing.T) {
		assert.True(t, s.IsDue(lastPaid.Add(30*24*time.Hour)))
	})

	t.Run("after the due instant", func(t *testing.T) {
		assert.True(t, s.IsDue(lastPaid.Add(31*24*time.Hour)))
	})

	t.Run("never paid is not due", func(t *testing.T) {
		fresh := ReconstructPayoutSettings("agency-2", vo.FrequencyWeekly, 5000, true, nil, lastPaid, lastPaid)
		assert.False(t, fresh.IsDue(lastPaid.Add(365*24*time.Hour)))
	})
}

func TestPayoutSettingsMarkPaidAt(t *testing.T) {
	s, err := NewPayoutSettings("agency-1", vo.FrequencyWeekly, 5000)
	require.NoError(t, err)

	paidAt := time.Date(2026, 4, 1, 8, 30, 0, 0, time.FixedZone("CET", 3600))
	s.MarkPaidAt(paidAt)

	require.NotNil(t, s.LastPayoutAt())
	assert.Equal(t, paidAt.UTC(), *s.LastPayoutAt())
	assert.Equal(t, time.UTC, s.LastPayoutAt().Location())
}

func TestPayoutSettingsUpdateSchedule(t *testing.T) {
	s, err := NewPayoutSettings("agency-1", vo.FrequencyMonthly, 5000)
	require.NoError(t, err)

	require.NoError(t, s.UpdateSchedule(vo.FrequencyBiWeekly, 10000))
	assert.Equal(t, vo.FrequencyBiWeekly, s.Frequency())
	assert.Equal(t, int64(10000), s.MinThresholdCents())

	assert.Error(t, s.UpdateSchedule(vo.Frequency("hourly"), 10000))
	assert.Error(t, s.UpdateSchedule(vo.FrequencyWeekly, -5))
	assert.Equal(t, vo.FrequencyBiWeekly, s.Frequency())
}
