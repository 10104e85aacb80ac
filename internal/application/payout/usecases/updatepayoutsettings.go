package usecases

import (
	"context"
	"fmt"

	"liken/internal/domain/payout"
	vo "liken/internal/domain/payout/valueobjects"
	"liken/internal/shared/errors"
	"liken/internal/shared/logger"
)

// UpdatePayoutSettingsCommand carries the fields an agency may change.
type UpdatePayoutSettingsCommand struct {
	AgencyID          string
	Frequency         string
	MinThresholdCents int64
	Enabled           bool
}

type UpdatePayoutSettingsUseCase struct {
	settingsRepo payout.SettingsRepository
	logger       logger.Interface
}

func NewUpdatePayoutSettingsUseCase(
	settingsRepo payout.SettingsRepository,
	logger logger.Interface,
) *UpdatePayoutSettingsUseCase {
	return &UpdatePayoutSettingsUseCase{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

func (uc *UpdatePayoutSettingsUseCase) Execute(ctx context.Context, cmd UpdatePayoutSettingsCommand) (*PayoutSettingsDTO, error) {
	frequency, err := vo.NewFrequency(cmd.Frequency)
	if err != nil {
		return nil, errors.NewValidationError("invalid payout frequency", cmd.Frequency)
	}
	if cmd.MinThresholdCents < 0 {
		return nil, errors.NewValidationError("minimum threshold cannot be negative")
	}

	settings, err := uc.settingsRepo.GetByAgencyID(ctx, cmd.AgencyID)
	if err != nil {
		uc.logger.Errorw("failed to load payout settings", "error", err, "agency_id", cmd.AgencyID)
		return nil, fmt.Errorf("failed to load payout settings: %w", err)
	}

	if settings == nil {
		settings, err = payout.NewPayoutSettings(cmd.AgencyID, frequency, cmd.MinThresholdCents)
		if err != nil {
			return nil, errors.NewValidationError("invalid payout settings", err.Error())
		}
	} else if err := settings.UpdateSchedule(frequency, cmd.MinThresholdCents); err != nil {
		return nil, errors.NewValidationError("invalid payout settings", err.Error())
	}

	if cmd.Enabled {
		settings.Enable()
	} else {
		settings.Disable()
	}

	if err := uc.settingsRepo.Upsert(ctx, settings); err != nil {
		uc.logger.Errorw("failed to save payout settings", "error", err, "agency_id", cmd.AgencyID)
		return nil, fmt.Errorf("failed to save payout settings: %w", err)
	}

	uc.logger.Infow("payout settings updated",
		"agency_id", cmd.AgencyID,
		"frequency", frequency.String(),
		"threshold_cents", cmd.MinThresholdCents,
		"enabled", cmd.Enabled)

	return toSettingsDTO(settings), nil
}
