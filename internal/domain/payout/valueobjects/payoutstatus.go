package valueobjects

import "fmt"

// PayoutStatus represents the lifecycle state of a payout request
type PayoutStatus string

const (
	// PayoutStatusPending means the request was created but not yet settled
	PayoutStatusPending PayoutStatus = "pending"
	// PayoutStatusSettled means funds were transferred to the agency
	PayoutStatusSettled PayoutStatus = "settled"
	// PayoutStatusFailed means settlement was attempted and rejected
	PayoutStatusFailed PayoutStatus = "failed"
)

// NewPayoutStatus creates a new PayoutStatus from string
func NewPayoutStatus(status string) (PayoutStatus, error) {
	s := PayoutStatus(status)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid payout status: %s", status)
	}
	return s, nil
}

// IsValid checks if the status is valid
func (s PayoutStatus) IsValid() bool {
	switch s {
	case PayoutStatusPending, PayoutStatusSettled, PayoutStatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s PayoutStatus) String() string {
	return string(s)
}

// IsFinal reports whether the status is terminal
func (s PayoutStatus) IsFinal() bool {
	return s == PayoutStatusSettled || s == PayoutStatusFailed
}
