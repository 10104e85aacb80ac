package repository

import (
	"context"
	"fmt"
	"time"

	"liken/internal/domain/payout"
	vo "liken/internal/domain/payout/valueobjects"
	"liken/internal/infrastructure/ledgerstore"
)

const earningRecordsTable = "earning_records"

type earningRecordRow struct {
	ID                string    `json:"id"`
	AgencyID          string    `json:"agency_id"`
	AgencyEarnedCents int64     `json:"agency_earned_cents"`
	Status            string    `json:"status"`
	PayoutRequestID   *string   `json:"payout_request_id"`
	CreatedAt         time.Time `json:"created_at"`
}

func (row earningRecordRow) toDomain() *payout.EarningRecord {
	return payout.ReconstructEarningRecord(
		row.ID,
		row.AgencyID,
		row.AgencyEarnedCents,
		vo.RecordStatus(row.Status),
		row.PayoutRequestID,
		row.CreatedAt,
	)
}

type EarningRecordRepository struct {
	store *ledgerstore.Client
}

func NewEarningRecordRepository(store *ledgerstore.Client) *EarningRecordRepository {
	return &EarningRecordRepository{store: store}
}

var _ payout.EarningRecordRepository = (*EarningRecordRepository)(nil)

func (r *EarningRecordRepository) SumUnclaimed(ctx context.Context, agencyID string) (int64, error) {
	var rows []earningRecordRow
	err := r.store.From(earningRecordsTable).
		Eq("agency_id", agencyID).
		Eq("status", vo.RecordStatusSucceeded.String()).
		IsNull("payout_request_id").
		Get(ctx, &rows)
	if err != nil {
		return 0, fmt.Errorf("failed to sum earning records: %w", err)
	}

	// The store already filters to claimable rows; the entity guard keeps
	// the invariant even if a stale read slips a linked or reversed row in.
	var total int64
	for _, row := range rows {
		record := row.toDomain()
		if record.IsClaimable() {
			total += record.EarnedCents()
		}
	}
	if total < 0 {
		total = 0
	}
	return total, nil
}

func (r *EarningRecordRepository) LinkToPayoutRequest(ctx context.Context, agencyID, requestID string) (int, error) {
	var updated []struct {
		ID string `json:"id"`
	}
	patch := map[string]interface{}{"payout_request_id": requestID}
	err := r.store.From(earningRecordsTable).
		Eq("agency_id", agencyID).
		Eq("status", vo.RecordStatusSucceeded.String()).
		IsNull("payout_request_id").
		Update(ctx, patch, &updated)
	if err != nil {
		return 0, fmt.Errorf("failed to link earning records: %w", err)
	}
	return len(updated), nil
}

func (r *EarningRecordRepository) UnlinkFromPayoutRequest(ctx context.Context, requestID string) error {
	patch := map[string]interface{}{"payout_request_id": nil}
	err := r.store.From(earningRecordsTable).
		Eq("payout_request_id", requestID).
		Update(ctx, patch, nil)
	if err != nil {
		return fmt.Errorf("failed to unlink earning records: %w", err)
	}
	return nil
}
