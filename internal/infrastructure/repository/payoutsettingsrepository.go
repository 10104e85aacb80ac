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

const payoutSettingsTable = "payout_settings"

type payoutSettingsRow struct {
	AgencyID          string     `json:"agency_id"`
	Frequency         string     `json:"frequency"`
	MinThresholdCents int64      `json:"min_payout_threshold_cents"`
	Enabled           bool       `json:"enabled"`
	LastPayoutAt      *time.Time `json:"last_payout_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type PayoutSettingsRepository struct {
	store *ledgerstore.Client
}

func NewPayoutSettingsRepository(store *ledgerstore.Client) *PayoutSettingsRepository {
	return &PayoutSettingsRepository{store: store}
}

var _ payout.SettingsRepository = (*PayoutSettingsRepository)(nil)

func (r *PayoutSettingsRepository) List(ctx context.Context, limit, offset int) ([]*payout.PayoutSettings, error) {
	var rows []payoutSettingsRow
	err := r.store.From(payoutSettingsTable).
		Order("agency_id", false).
		Limit(limit).
		Offset(offset).
		Get(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list payout settings: %w", err)
	}

	settings := make([]*payout.PayoutSettings, 0, len(rows))
	for _, row := range rows {
		settings = append(settings, row.toDomain())
	}
	return settings, nil
}

func (r *PayoutSettingsRepository) GetByAgencyID(ctx context.Context, agencyID string) (*payout.PayoutSettings, error) {
	var rows []payoutSettingsRow
	err := r.store.From(payoutSettingsTable).
		Eq("agency_id", agencyID).
		Limit(1).
		Get(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get payout settings: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toDomain(), nil
}

func (r *PayoutSettingsRepository) Upsert(ctx context.Context, settings *payout.PayoutSettings) error {
	row := payoutSettingsRow{
		AgencyID:          settings.AgencyID(),
		Frequency:         settings.Frequency().String(),
		MinThresholdCents: settings.MinThresholdCents(),
		Enabled:           settings.Enabled(),
		LastPayoutAt:      settings.LastPayoutAt(),
		CreatedAt:         settings.CreatedAt(),
		UpdatedAt:         settings.UpdatedAt(),
	}
	err := r.store.From(payoutSettingsTable).
		OnConflict("agency_id").
		Upsert(ctx, []payoutSettingsRow{row}, nil)
	if err != nil {
		return fmt.Errorf("failed to upsert payout settings: %w", err)
	}
	return nil
}

func (r *PayoutSettingsRepository) SetLastPayoutAt(ctx context.Context, agencyID string, paidAt time.Time) error {
	patch := map[string]interface{}{
		"last_payout_at": paidAt.UTC(),
		"updated_at":     biztime.NowUTC(),
	}
	err := r.store.From(payoutSettingsTable).
		Eq("agency_id", agencyID).
		Update(ctx, patch, nil)
	if err != nil {
		return fmt.Errorf("failed to set last payout time: %w", err)
	}
	return nil
}

// toDomain passes the stored frequency through untranslated; the domain
// treats unrecognized values as a monthly cycle.
func (row payoutSettingsRow) toDomain() *payout.PayoutSettings {
	return payout.ReconstructPayoutSettings(
		row.AgencyID,
		vo.Frequency(row.Frequency),
		row.MinThresholdCents,
		row.Enabled,
		row.LastPayoutAt,
		row.CreatedAt,
		row.UpdatedAt,
	)
}
