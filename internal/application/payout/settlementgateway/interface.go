// Package settlementgateway defines the outbound port for moving money
// to an agency. Implementations live in infrastructure.
package settlementgateway

import "context"

// PayoutCommand carries everything a provider needs to execute one transfer.
type PayoutCommand struct {
	RequestID   string
	AgencyID    string
	AmountCents int64
	Currency    string
}

// SettlementGateway executes a payout with the payment provider. The
// implementation owns recording the terminal outcome (settled or failed
// with a reason) on the payout request; a returned error means the
// transfer did not go through.
type SettlementGateway interface {
	ExecutePayout(ctx context.Context, cmd PayoutCommand) error
}
