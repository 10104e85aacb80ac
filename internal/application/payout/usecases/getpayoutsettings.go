package usecases

import (
	"context"
	"time"

	"liken/internal/domain/payout"
	vo "liken/internal/domain/payout/valueobjects"
	sharedconfig "liken/internal/shared/config"
	apperrors "liken/internal/shared/errors"
	"liken/internal/shared/logger"
)

// PayoutSettingsDTO is the outward shape of an agency's payout settings.
type PayoutSettingsDTO struct {
	AgencyID          string     `json:"agency_id"`
	Frequency         string     `json:"frequency"`
	MinThresholdCents int64      `json:"min_threshold_cents"`
	Enabled           bool       `json:"enabled"`
	LastPayoutAt      *time.Time `json:"last_payout_at,omitempty"`
}

type GetPayoutSettingsUseCase struct {
	settingsRepo payout.SettingsRepository
	cfg          sharedconfig.PayoutConfig
	logger       logger.Interface
}

func NewGetPayoutSettingsUseCase(
	settingsRepo payout.SettingsRepository,
	cfg sharedconfig.PayoutConfig,
	logger logger.Interface,
) *GetPayoutSettingsUseCase {
	return &GetPayoutSettingsUseCase{
		settingsRepo: settingsRepo,
		cfg:          cfg,
		logger:       logger,
	}
}

// Execute returns the agency's settings, falling back to defaults when
// the agency has never saved any.
func (uc *GetPayoutSettingsUseCase) Execute(ctx context.Context, agencyID string) (*PayoutSettingsDTO, error) {
	settings, err := uc.settingsRepo.GetByAgencyID(ctx, agencyID)
	if err != nil {
		uc.logger.Errorw("failed to load payout settings", "error", err, "agency_id", agencyID)
		return nil, apperrors.NewUnavailableError("failed to load payout settings", err.Error())
	}

	if settings == nil {
		return &PayoutSettingsDTO{
			AgencyID:          agencyID,
			Frequency:         vo.FrequencyMonthly.String(),
			MinThresholdCents: uc.cfg.DefaultThresholdCents,
			Enabled:           false,
		}, nil
	}

	return toSettingsDTO(settings), nil
}

func toSettingsDTO(settings *payout.PayoutSettings) *PayoutSettingsDTO {
	return &PayoutSettingsDTO{
		AgencyID:          settings.AgencyID(),
		Frequency:         settings.Frequency().String(),
		MinThresholdCents: settings.MinThresholdCents(),
		Enabled:           settings.Enabled(),
		LastPayoutAt:      settings.LastPayoutAt(),
	}
}
