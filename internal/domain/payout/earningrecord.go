package payout

import (
	"time"

	vo "liken/internal/domain/payout/valueobjects"
)

// EarningRecord is a single commission earned by an agency. Records are
// written by the billing pipeline and only read here, so there is no
// constructor for new records, just reconstruction from the store.
type EarningRecord struct {
	id              string
	agencyID        string
	earnedCents     int64
	status          vo.RecordStatus
	payoutRequestID *string
	createdAt       time.Time
}

func ReconstructEarningRecord(
	id string,
	agencyID string,
	earnedCents int64,
	status vo.RecordStatus,
	payoutRequestID *string,
	createdAt time.Time,
) *EarningRecord {
	return &EarningRecord{
		id:              id,
		agencyID:        agencyID,
		earnedCents:     earnedCents,
		status:          status,
		payoutRequestID: payoutRequestID,
		createdAt:       createdAt,
	}
}

// IsClaimable reports whether the record can still be attached to a payout.
func (r *EarningRecord) IsClaimable() bool {
	return r.status.IsPayable() && r.payoutRequestID == nil
}

func (r *EarningRecord) ID() string { return r.id }

func (r *EarningRecord) AgencyID() string { return r.agencyID }

func (r *EarningRecord) EarnedCents() int64 { return r.earnedCents }

func (r *EarningRecord) Status() vo.RecordStatus { return r.status }

func (r *EarningRecord) PayoutRequestID() *string { return r.payoutRequestID }

func (r *EarningRecord) CreatedAt() time.Time { return r.createdAt }
