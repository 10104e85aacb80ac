// Package settlement moves agency payouts through Stripe Connect
// transfers to each agency's connected account.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"liken/internal/application/payout/settlementgateway"
	sharedconfig "liken/internal/shared/config"
	"liken/internal/shared/logger"
)

// AccountResolver maps an agency to its connected provider account.
type AccountResolver interface {
	GetSettlementAccountID(ctx context.Context, agencyID string) (string, error)
}

// RequestStatusStore records the terminal outcome on the payout request row.
type RequestStatusStore interface {
	MarkSettled(ctx context.Context, requestID string) error
	MarkFailed(ctx context.Context, requestID, reason string) error
}

type StripeGateway struct {
	api      *client.API
	accounts AccountResolver
	requests RequestStatusStore
	logger   logger.Interface
}

func NewStripeGateway(
	cfg sharedconfig.StripeConfig,
	accounts AccountResolver,
	requests RequestStatusStore,
	logger logger.Interface,
) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &StripeGateway{
		api:      api,
		accounts: accounts,
		requests: requests,
		logger:   logger,
	}
}

var _ settlementgateway.SettlementGateway = (*StripeGateway)(nil)

func (g *StripeGateway) ExecutePayout(ctx context.Context, cmd settlementgateway.PayoutCommand) error {
	accountID, err := g.accounts.GetSettlementAccountID(ctx, cmd.AgencyID)
	if err != nil {
		g.fail(ctx, cmd.RequestID, err.Error())
		return fmt.Errorf("failed to resolve settlement account: %w", err)
	}

	params := &stripe.TransferParams{
		Amount:      stripe.Int64(cmd.AmountCents),
		Currency:    stripe.String(strings.ToLower(cmd.Currency)),
		Destination: stripe.String(accountID),
	}
	params.Context = ctx
	params.AddMetadata("payout_request_id", cmd.RequestID)
	params.AddMetadata("agency_id", cmd.AgencyID)

	transfer, err := g.api.Transfers.New(params)
	if err != nil {
		g.fail(ctx, cmd.RequestID, transferFailureReason(err))
		return fmt.Errorf("stripe transfer failed: %w", err)
	}

	g.logger.Infow("stripe transfer created",
		"transfer_id", transfer.ID,
		"request_id", cmd.RequestID,
		"destination", accountID,
		"amount_cents", cmd.AmountCents)

	// The transfer went through, so the payout must count as settled
	// even if recording that fails. Returning an error here would make
	// the caller release the claimed records and pay the agency again.
	if err := g.requests.MarkSettled(ctx, cmd.RequestID); err != nil {
		g.logger.Errorw("failed to persist settled payout request",
			"error", err,
			"request_id", cmd.RequestID,
			"transfer_id", transfer.ID)
	}
	return nil
}

func (g *StripeGateway) fail(ctx context.Context, requestID, reason string) {
	if err := g.requests.MarkFailed(ctx, requestID, reason); err != nil {
		g.logger.Errorw("failed to persist failed payout request",
			"error", err, "request_id", requestID)
	}
}

// transferFailureReason prefers Stripe's own message over the raw error.
func transferFailureReason(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return err.Error()
}
