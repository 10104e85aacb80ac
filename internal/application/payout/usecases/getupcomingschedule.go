package usecases

import (
	"context"
	"fmt"
	"time"

	"liken/internal/domain/payout"
	vo "liken/internal/domain/payout/valueobjects"
	"liken/internal/shared/biztime"
	sharedconfig "liken/internal/shared/config"
	"liken/internal/shared/logger"
)

// UpcomingScheduleDTO previews the agency's next payout.
type UpcomingScheduleDTO struct {
	NextDueAt      time.Time `json:"next_due_at"`
	BalanceCents   int64     `json:"balance_cents"`
	ThresholdCents int64     `json:"threshold_cents"`
	WillPayOut     bool      `json:"will_pay_out"`
	PayoutsEnabled bool      `json:"payouts_enabled"`
	Frequency      string    `json:"frequency"`
}

type GetUpcomingScheduleUseCase struct {
	settingsRepo payout.SettingsRepository
	recordRepo   payout.EarningRecordRepository
	cfg          sharedconfig.PayoutConfig
	logger       logger.Interface
}

func NewGetUpcomingScheduleUseCase(
	settingsRepo payout.SettingsRepository,
	recordRepo payout.EarningRecordRepository,
	cfg sharedconfig.PayoutConfig,
	logger logger.Interface,
) *GetUpcomingScheduleUseCase {
	return &GetUpcomingScheduleUseCase{
		settingsRepo: settingsRepo,
		recordRepo:   recordRepo,
		cfg:          cfg,
		logger:       logger,
	}
}

func (uc *GetUpcomingScheduleUseCase) Execute(ctx context.Context, agencyID string) (*UpcomingScheduleDTO, error) {
	settings, err := uc.settingsRepo.GetByAgencyID(ctx, agencyID)
	if err != nil {
		uc.logger.Errorw("failed to load payout settings", "error", err, "agency_id", agencyID)
		return nil, fmt.Errorf("failed to load payout settings: %w", err)
	}

	now := biztime.NowUTC()

	balance, err := uc.recordRepo.SumUnclaimed(ctx, agencyID)
	if err != nil {
		uc.logger.Errorw("failed to read agency balance", "error", err, "agency_id", agencyID)
		balance = 0
	}
	if balance < 0 {
		balance = 0
	}

	if settings == nil {
		defaults, err := payout.NewPayoutSettings(agencyID, vo.FrequencyMonthly, uc.cfg.DefaultThresholdCents)
		if err != nil {
			return nil, fmt.Errorf("failed to build default settings: %w", err)
		}
		return &UpcomingScheduleDTO{
			NextDueAt:      defaults.NextDueAt(now),
			BalanceCents:   balance,
			ThresholdCents: defaults.MinThresholdCents(),
			WillPayOut:     false,
			PayoutsEnabled: false,
			Frequency:      defaults.Frequency().String(),
		}, nil
	}

	return &UpcomingScheduleDTO{
		NextDueAt:      settings.NextDueAt(now),
		BalanceCents:   balance,
		ThresholdCents: settings.MinThresholdCents(),
		WillPayOut:     settings.Enabled() && balance > settings.MinThresholdCents(),
		PayoutsEnabled: settings.Enabled(),
		Frequency:      settings.Frequency().String(),
	}, nil
}
