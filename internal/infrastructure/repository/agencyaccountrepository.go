package repository

import (
	"context"
	"fmt"

	"liken/internal/infrastructure/ledgerstore"
	"liken/internal/shared/errors"
)

const agenciesTable = "agencies"

// AgencyAccountRepository resolves an agency's settlement account with
// the payment provider.
type AgencyAccountRepository struct {
	store *ledgerstore.Client
}

func NewAgencyAccountRepository(store *ledgerstore.Client) *AgencyAccountRepository {
	return &AgencyAccountRepository{store: store}
}

func (r *AgencyAccountRepository) GetSettlementAccountID(ctx context.Context, agencyID string) (string, error) {
	var rows []struct {
		StripeConnectAccountID *string `json:"stripe_connect_account_id"`
	}
	err := r.store.From(agenciesTable).
		Select("stripe_connect_account_id").
		Eq("id", agencyID).
		Limit(1).
		Get(ctx, &rows)
	if err != nil {
		return "", fmt.Errorf("failed to resolve agency settlement account: %w", err)
	}
	if len(rows) == 0 {
		return "", errors.NewNotFoundError("agency not found", agencyID)
	}
	if rows[0].StripeConnectAccountID == nil || *rows[0].StripeConnectAccountID == "" {
		return "", errors.NewNotFoundError("agency has no settlement account", agencyID)
	}
	return *rows[0].StripeConnectAccountID, nil
}
