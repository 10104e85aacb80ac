package payout

import (
	"context"
	"time"
)

// SettingsRepository persists per-agency payout settings.
type SettingsRepository interface {
	// List returns settings pages ordered by agency ID for stable pagination.
	List(ctx context.Context, limit, offset int) ([]*PayoutSettings, error)
	GetByAgencyID(ctx context.Context, agencyID string) (*PayoutSettings, error)
	Upsert(ctx context.Context, settings *PayoutSettings) error
	SetLastPayoutAt(ctx context.Context, agencyID string, paidAt time.Time) error
}

// EarningRecordRepository reads and claims earning records.
type EarningRecordRepository interface {
	// SumUnclaimed returns the total payable cents for an agency,
	// counting only succeeded records not attached to a payout request.
	SumUnclaimed(ctx context.Context, agencyID string) (int64, error)
	// LinkToPayoutRequest claims every currently unclaimed succeeded
	// record for the agency and returns how many were linked.
	LinkToPayoutRequest(ctx context.Context, agencyID, requestID string) (int, error)
	// UnlinkFromPayoutRequest releases all records held by a request.
	UnlinkFromPayoutRequest(ctx context.Context, requestID string) error
}

// RequestRepository persists payout requests.
type RequestRepository interface {
	Create(ctx context.Context, request *PayoutRequest) error
	// FindActiveByCycleKey returns the pending or settled request for a
	// cycle key, or nil when none exists. Failed requests do not count,
	// so a failed cycle can be retried.
	FindActiveByCycleKey(ctx context.Context, cycleKey string) (*PayoutRequest, error)
	ListByAgencyID(ctx context.Context, agencyID string, limit, offset int) ([]*PayoutRequest, error)
	UpdateStatus(ctx context.Context, request *PayoutRequest) error
}
