package repository

import (
	"context"
	"fmt"
	"time"

	"liken/internal/domain/payout"
	vo "liken/internal/domain/payout/valueobjects"
	"liken/internal/infrastructure/ledgerstore"
	"liken/internal/shared/biztime"
)

const payoutRequestsTable = "payout_requests"

type payoutRequestRow struct {
	ID            string     `json:"id"`
	AgencyID      string     `json:"agency_id"`
	AmountCents   int64      `json:"amount_cents"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	CycleKey      string     `json:"cycle_key"`
	FailureReason *string    `json:"failure_reason"`
	CreatedAt     time.Time  `json:"created_at"`
	SettledAt     *time.Time `json:"settled_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type PayoutRequestRepository struct {
	store *ledgerstore.Client
}

func NewPayoutRequestRepository(store *ledgerstore.Client) *PayoutRequestRepository {
	return &PayoutRequestRepository{store: store}
}

var _ payout.RequestRepository = (*PayoutRequestRepository)(nil)

func (r *PayoutRequestRepository) Create(ctx context.Context, request *payout.PayoutRequest) error {
	row := payoutRequestRow{
		ID:            request.ID(),
		AgencyID:      request.AgencyID(),
		AmountCents:   request.Amount().AmountInCents(),
		Currency:      request.Amount().Currency(),
		Status:        request.Status().String(),
		CycleKey:      request.CycleKey(),
		FailureReason: request.FailureReason(),
		CreatedAt:     request.CreatedAt(),
		SettledAt:     request.SettledAt(),
		UpdatedAt:     request.UpdatedAt(),
	}
	err := r.store.From(payoutRequestsTable).Insert(ctx, []payoutRequestRow{row}, nil)
	if err != nil {
		return fmt.Errorf("failed to create payout request: %w", err)
	}
	return nil
}

func (r *PayoutRequestRepository) FindActiveByCycleKey(ctx context.Context, cycleKey string) (*payout.PayoutRequest, error) {
	var rows []payoutRequestRow
	err := r.store.From(payoutRequestsTable).
		Eq("cycle_key", cycleKey).
		In("status", []string{
			vo.PayoutStatusPending.String(),
			vo.PayoutStatusSettled.String(),
		}).
		Limit(1).
		Get(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to find payout request by cycle key: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toDomain(), nil
}

func (r *PayoutRequestRepository) ListByAgencyID(ctx context.Context, agencyID string, limit, offset int) ([]*payout.PayoutRequest, error) {
	var rows []payoutRequestRow
	err := r.store.From(payoutRequestsTable).
		Eq("agency_id", agencyID).
		Order("created_at", true).
		Limit(limit).
		Offset(offset).
		Get(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list payout requests: %w", err)
	}

	requests := make([]*payout.PayoutRequest, 0, len(rows))
	for _, row := range rows {
		requests = append(requests, row.toDomain())
	}
	return requests, nil
}

func (r *PayoutRequestRepository) UpdateStatus(ctx context.Context, request *payout.PayoutRequest) error {
	patch := map[string]interface{}{
		"status":         request.Status().String(),
		"failure_reason": request.FailureReason(),
		"settled_at":     request.SettledAt(),
		"updated_at":     request.UpdatedAt(),
	}
	err := r.store.From(payoutRequestsTable).
		Eq("id", request.ID()).
		Update(ctx, patch, nil)
	if err != nil {
		return fmt.Errorf("failed to update payout request: %w", err)
	}
	return nil
}

// MarkSettled patches the row directly by ID. The settlement gateway
// uses this after the provider accepted the transfer.
func (r *PayoutRequestRepository) MarkSettled(ctx context.Context, requestID string) error {
	now := biztime.NowUTC()
	patch := map[string]interface{}{
		"status":     vo.PayoutStatusSettled.String(),
		"settled_at": now,
		"updated_at": now,
	}
	err := r.store.From(payoutRequestsTable).
		Eq("id", requestID).
		Update(ctx, patch, nil)
	if err != nil {
		return fmt.Errorf("failed to mark payout request settled: %w", err)
	}
	return nil
}

// MarkFailed patches the row directly by ID with the provider's reason.
func (r *PayoutRequestRepository) MarkFailed(ctx context.Context, requestID, reason string) error {
	patch := map[string]interface{}{
		"status":         vo.PayoutStatusFailed.String(),
		"failure_reason": reason,
		"updated_at":     biztime.NowUTC(),
	}
	err := r.store.From(payoutRequestsTable).
		Eq("id", requestID).
		Update(ctx, patch, nil)
	if err != nil {
		return fmt.Errorf("failed to mark payout request failed: %w", err)
	}
	return nil
}

func (row payoutRequestRow) toDomain() *payout.PayoutRequest {
	return payout.ReconstructPayoutRequest(
		row.ID,
		row.AgencyID,
		vo.NewMoney(row.AmountCents, row.Currency),
		vo.PayoutStatus(row.Status),
		row.CycleKey,
		row.FailureReason,
		row.CreatedAt,
		row.SettledAt,
		row.UpdatedAt,
	)
}
