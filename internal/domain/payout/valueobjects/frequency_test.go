package valueobjects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewFrequency(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Frequency
		wantErr bool
	}{
		{name: "weekly", input: "weekly", want: FrequencyWeekly},
		{name: "biweekly", input: "biweekly", want: FrequencyBiWeekly},
		{name: "monthly", input: "monthly", want: FrequencyMonthly},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "daily", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewFrequency(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFrequencyCycleDays(t *testing.T) {
	tests := []struct {
		name      string
		frequency Frequency
		want      int
	}{
		{name: "weekly is 7 days", frequency: FrequencyWeekly, want: 7},
		{name: "biweekly is 14 days", frequency: FrequencyBiWeekly, want: 14},
		{name: "monthly is 30 days", frequency: FrequencyMonthly, want: 30},
		{name: "unrecognized falls back to 30 days", frequency: Frequency("quarterly"), want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.frequency.CycleDays())
		})
	}
}

func TestFrequencyCycleDuration(t *testing.T) {
	assert.Equal(t, 7*24*time.Hour, FrequencyWeekly.CycleDuration())
	assert.Equal(t, 30*24*time.Hour, FrequencyMonthly.CycleDuration())
}
