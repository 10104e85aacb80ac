package payout

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	vo "liken/internal/domain/payout/valueobjects"
	"liken/internal/shared/biztime"
)

// PayoutRequest is one attempt to transfer an agency's accumulated
// earnings. The cycle key makes a request unique per agency per due
// date, so a crashed or re-run cycle cannot double pay.
type PayoutRequest struct {
	id            string
	agencyID      string
	amount        vo.Money
	status        vo.PayoutStatus
	cycleKey      string
	failureReason *string
	createdAt     time.Time
	settledAt     *time.Time
	updatedAt     time.Time
}

func NewPayoutRequest(agencyID string, amount vo.Money, cycleKey string) (*PayoutRequest, error) {
	if agencyID == "" {
		return nil, fmt.Errorf("agency ID is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if cycleKey == "" {
		return nil, fmt.Errorf("cycle key is required")
	}

	now := biztime.NowUTC()
	return &PayoutRequest{
		id:        uuid.NewString(),
		agencyID:  agencyID,
		amount:    amount,
		status:    vo.PayoutStatusPending,
		cycleKey:  cycleKey,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructPayoutRequest rebuilds a payout request from stored state.
func ReconstructPayoutRequest(
	id string,
	agencyID string,
	amount vo.Money,
	status vo.PayoutStatus,
	cycleKey string,
	failureReason *string,
	createdAt time.Time,
	settledAt *time.Time,
	updatedAt time.Time,
) *PayoutRequest {
	return &PayoutRequest{
		id:            id,
		agencyID:      agencyID,
		amount:        amount,
		status:        status,
		cycleKey:      cycleKey,
		failureReason: failureReason,
		createdAt:     createdAt,
		settledAt:     settledAt,
		updatedAt:     updatedAt,
	}
}

// CycleKeyFor derives the deterministic cycle key for an agency and due date.
func CycleKeyFor(agencyID string, dueAt time.Time) string {
	return fmt.Sprintf("%s:%s", agencyID, dueAt.UTC().Format("2006-01-02"))
}

// MarkSettled transitions the request to settled.
func (p *PayoutRequest) MarkSettled() error {
	if p.status == vo.PayoutStatusSettled {
		return nil
	}
	if p.status != vo.PayoutStatusPending {
		return fmt.Errorf("cannot settle payout request with status %s", p.status)
	}

	now := biztime.NowUTC()
	p.status = vo.PayoutStatusSettled
	p.settledAt = &now
	p.updatedAt = now
	return nil
}

// MarkFailed transitions the request to failed with the gateway's reason.
func (p *PayoutRequest) MarkFailed(reason string) error {
	if p.status.IsFinal() {
		return fmt.Errorf("cannot fail payout request with final status %s", p.status)
	}

	p.status = vo.PayoutStatusFailed
	p.failureReason = &reason
	p.updatedAt = biztime.NowUTC()
	return nil
}

func (p *PayoutRequest) ID() string { return p.id }

func (p *PayoutRequest) AgencyID() string { return p.agencyID }

func (p *PayoutRequest) Amount() vo.Money { return p.amount }

func (p *PayoutRequest) Status() vo.PayoutStatus { return p.status }

func (p *PayoutRequest) CycleKey() string { return p.cycleKey }

func (p *PayoutRequest) FailureReason() *string { return p.failureReason }

func (p *PayoutRequest) CreatedAt() time.Time { return p.createdAt }

func (p *PayoutRequest) SettledAt() *time.Time { return p.settledAt }

func (p *PayoutRequest) UpdatedAt() time.Time { return p.updatedAt }
