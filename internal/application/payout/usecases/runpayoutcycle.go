package usecases

import (
	"context"
	"time"

	"liken/internal/application/payout/settlementgateway"
	"liken/internal/domain/payout"
	vo "liken/internal/domain/payout/valueobjects"
	"liken/internal/shared/biztime"
	sharedconfig "liken/internal/shared/config"
	"liken/internal/shared/logger"
)

// RunPayoutCycleUseCase walks every agency's payout settings and settles
// the agencies that are due with a balance above their threshold. One
// agency failing never aborts the rest of the cycle.
type RunPayoutCycleUseCase struct {
	settingsRepo payout.SettingsRepository
	recordRepo   payout.EarningRecordRepository
	requestRepo  payout.RequestRepository
	gateway      settlementgateway.SettlementGateway
	cfg          sharedconfig.PayoutConfig
	logger       logger.Interface
}

func NewRunPayoutCycleUseCase(
	settingsRepo payout.SettingsRepository,
	recordRepo payout.EarningRecordRepository,
	requestRepo payout.RequestRepository,
	gateway settlementgateway.SettlementGateway,
	cfg sharedconfig.PayoutConfig,
	logger logger.Interface,
) *RunPayoutCycleUseCase {
	return &RunPayoutCycleUseCase{
		settingsRepo: settingsRepo,
		recordRepo:   recordRepo,
		requestRepo:  requestRepo,
		gateway:      gateway,
		cfg:          cfg,
		logger:       logger,
	}
}

// Execute runs one payout cycle and returns the number of settled payouts.
func (uc *RunPayoutCycleUseCase) Execute(ctx context.Context) (int, error) {
	if !uc.cfg.SchedulerEnabled {
		uc.logger.Debugw("payout scheduler disabled, skipping cycle")
		return 0, nil
	}
	if uc.gateway == nil {
		uc.logger.Warnw("no settlement gateway configured, skipping cycle")
		return 0, nil
	}

	pageSize := uc.cfg.SettingsPageSize
	if pageSize <= 0 {
		pageSize = 500
	}

	now := biztime.NowUTC()
	settled := 0
	for offset := 0; ; offset += pageSize {
		page, err := uc.listSettings(ctx, pageSize, offset)
		if err != nil {
			uc.logger.Errorw("failed to list payout settings", "error", err, "offset", offset)
			return settled, err
		}
		if len(page) == 0 {
			break
		}

		for _, settings := range page {
			if uc.processAgency(ctx, settings, now) {
				settled++
			}
		}

		if len(page) < pageSize {
			break
		}
	}

	uc.logger.Infow("payout cycle completed", "settled", settled)
	return settled, nil
}

// processAgency runs the full due-check, claim, and settle flow for one
// agency. It returns true only when the payout settled.
func (uc *RunPayoutCycleUseCase) processAgency(ctx context.Context, settings *payout.PayoutSettings, now time.Time) bool {
	agencyID := settings.AgencyID()

	if !settings.Enabled() {
		return false
	}
	if !settings.IsDue(now) {
		return false
	}

	balance := uc.availableBalance(ctx, agencyID)
	if balance <= settings.MinThresholdCents() {
		uc.logger.Debugw("balance below payout threshold",
			"agency_id", agencyID,
			"balance_cents", balance,
			"threshold_cents", settings.MinThresholdCents())
		return false
	}

	dueAt := settings.NextDueAt(now)
	cycleKey := payout.CycleKeyFor(agencyID, dueAt)

	existing, err := uc.findActiveRequest(ctx, cycleKey)
	if err != nil {
		uc.logger.Errorw("failed to check for existing payout request",
			"error", err, "agency_id", agencyID, "cycle_key", cycleKey)
		return false
	}
	if existing != nil {
		uc.logger.Debugw("payout request already exists for cycle",
			"agency_id", agencyID,
			"cycle_key", cycleKey,
			"status", existing.Status().String())
		return false
	}

	amount := vo.NewMoney(balance, uc.cfg.Currency)
	request, err := payout.NewPayoutRequest(agencyID, amount, cycleKey)
	if err != nil {
		uc.logger.Errorw("failed to build payout request", "error", err, "agency_id", agencyID)
		return false
	}

	if err := uc.createRequest(ctx, request); err != nil {
		uc.logger.Errorw("failed to create payout request",
			"error", err, "agency_id", agencyID, "cycle_key", cycleKey)
		return false
	}

	linked, err := uc.linkRecords(ctx, agencyID, request.ID())
	if err != nil {
		// Without claimed records the request must not settle, so
		// record the failure and let the next cycle retry the key.
		uc.logger.Errorw("failed to link earning records",
			"error", err, "agency_id", agencyID, "request_id", request.ID())
		uc.failRequest(ctx, request, "failed to link earning records")
		return false
	}

	uc.logger.Infow("settling payout",
		"agency_id", agencyID,
		"request_id", request.ID(),
		"amount_cents", balance,
		"linked_records", linked)

	if err := uc.settle(ctx, request); err != nil {
		// The gateway has already recorded the failure on the request;
		// release the claimed records so the next cycle can retry.
		uc.logger.Errorw("payout settlement failed",
			"error", err, "agency_id", agencyID, "request_id", request.ID())
		uc.unlinkRecords(ctx, request.ID())
		return false
	}

	if err := uc.setLastPayoutAt(ctx, agencyID, now); err != nil {
		uc.logger.Warnw("failed to advance last payout time",
			"error", err, "agency_id", agencyID)
	}

	return true
}

// availableBalance is the agency's payable balance, floored at zero.
// A store read failure is treated as zero so a flaky store can only
// delay payouts, never produce one.
func (uc *RunPayoutCycleUseCase) availableBalance(ctx context.Context, agencyID string) int64 {
	cctx, cancel := uc.callCtx(ctx)
	defer cancel()

	sum, err := uc.recordRepo.SumUnclaimed(cctx, agencyID)
	if err != nil {
		uc.logger.Errorw("failed to read agency balance, treating as zero",
			"error", err, "agency_id", agencyID)
		return 0
	}
	if sum < 0 {
		return 0
	}
	return sum
}

func (uc *RunPayoutCycleUseCase) listSettings(ctx context.Context, limit, offset int) ([]*payout.PayoutSettings, error) {
	cctx, cancel := uc.callCtx(ctx)
	defer cancel()
	return uc.settingsRepo.List(cctx, limit, offset)
}

func (uc *RunPayoutCycleUseCase) findActiveRequest(ctx context.Context, cycleKey string) (*payout.PayoutRequest, error) {
	cctx, cancel := uc.callCtx(ctx)
	defer cancel()
	return uc.requestRepo.FindActiveByCycleKey(cctx, cycleKey)
}

func (uc *RunPayoutCycleUseCase) createRequest(ctx context.Context, request *payout.PayoutRequest) error {
	cctx, cancel := uc.callCtx(ctx)
	defer cancel()
	return uc.requestRepo.Create(cctx, request)
}

func (uc *RunPayoutCycleUseCase) linkRecords(ctx context.Context, agencyID, requestID string) (int, error) {
	cctx, cancel := uc.callCtx(ctx)
	defer cancel()
	return uc.recordRepo.LinkToPayoutRequest(cctx, agencyID, requestID)
}

func (uc *RunPayoutCycleUseCase) unlinkRecords(ctx context.Context, requestID string) {
	cctx, cancel := uc.callCtx(ctx)
	defer cancel()
	if err := uc.recordRepo.UnlinkFromPayoutRequest(cctx, requestID); err != nil {
		uc.logger.Errorw("failed to unlink earning records", "error", err, "request_id", requestID)
	}
}

func (uc *RunPayoutCycleUseCase) settle(ctx context.Context, request *payout.PayoutRequest) error {
	cctx, cancel := uc.callCtx(ctx)
	defer cancel()
	return uc.gateway.ExecutePayout(cctx, settlementgateway.PayoutCommand{
		RequestID:   request.ID(),
		AgencyID:    request.AgencyID(),
		AmountCents: request.Amount().AmountInCents(),
		Currency:    request.Amount().Currency(),
	})
}

func (uc *RunPayoutCycleUseCase) failRequest(ctx context.Context, request *payout.PayoutRequest, reason string) {
	if err := request.MarkFailed(reason); err != nil {
		uc.logger.Errorw("failed to mark payout request failed", "error", err, "request_id", request.ID())
		return
	}
	cctx, cancel := uc.callCtx(ctx)
	defer cancel()
	if err := uc.requestRepo.UpdateStatus(cctx, request); err != nil {
		uc.logger.Errorw("failed to persist failed payout request", "error", err, "request_id", request.ID())
	}
}

func (uc *RunPayoutCycleUseCase) setLastPayoutAt(ctx context.Context, agencyID string, paidAt time.Time) error {
	cctx, cancel := uc.callCtx(ctx)
	defer cancel()
	return uc.settingsRepo.SetLastPayoutAt(cctx, agencyID, paidAt)
}

func (uc *RunPayoutCycleUseCase) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.cfg.CallTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, uc.cfg.CallTimeout)
}
