package usecases

import (
	"context"
	"time"

	"liken/internal/domain/payout"
	apperrors "liken/internal/shared/errors"
	"liken/internal/shared/logger"
)

// PayoutRequestDTO is the outward shape of one payout request.
type PayoutRequestDTO struct {
	ID            string     `json:"id"`
	AmountCents   int64      `json:"amount_cents"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	FailureReason *string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	SettledAt     *time.Time `json:"settled_at,omitempty"`
}

type ListPayoutHistoryUseCase struct {
	requestRepo payout.RequestRepository
	logger      logger.Interface
}

func NewListPayoutHistoryUseCase(
	requestRepo payout.RequestRepository,
	logger logger.Interface,
) *ListPayoutHistoryUseCase {
	return &ListPayoutHistoryUseCase{
		requestRepo: requestRepo,
		logger:      logger,
	}
}

// Execute returns the agency's payout requests, newest first.
func (uc *ListPayoutHistoryUseCase) Execute(ctx context.Context, agencyID string, limit, offset int) ([]*PayoutRequestDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	requests, err := uc.requestRepo.ListByAgencyID(ctx, agencyID, limit, offset)
	if err != nil {
		uc.logger.Errorw("failed to list payout requests", "error", err, "agency_id", agencyID)
		return nil, apperrors.NewUnavailableError("failed to list payout requests", err.Error())
	}

	dtos := make([]*PayoutRequestDTO, 0, len(requests))
	for _, r := range requests {
		dtos = append(dtos, &PayoutRequestDTO{
			ID:            r.ID(),
			AmountCents:   r.Amount().AmountInCents(),
			Currency:      r.Amount().Currency(),
			Status:        r.Status().String(),
			FailureReason: r.FailureReason(),
			CreatedAt:     r.CreatedAt(),
			SettledAt:     r.SettledAt(),
		})
	}
	return dtos, nil
}
