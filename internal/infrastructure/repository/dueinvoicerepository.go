package repository

import (
	"context"
	"fmt"
	"time"

	"liken/internal/application/reminder/usecases"
	"liken/internal/infrastructure/ledgerstore"
	"liken/internal/shared/biztime"
)

const paymentsTable = "payments"

type dueInvoiceRow struct {
	ID          string    `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	DueDate     time.Time `json:"due_date"`
	Brand       struct {
		Email       string `json:"email"`
		CompanyName string `json:"company_name"`
	} `json:"brands"`
}

// DueInvoiceRepository reads pending brand payments for the reminder sweep.
type DueInvoiceRepository struct {
	store *ledgerstore.Client
}

func NewDueInvoiceRepository(store *ledgerstore.Client) *DueInvoiceRepository {
	return &DueInvoiceRepository{store: store}
}

var _ usecases.DueInvoiceReader = (*DueInvoiceRepository)(nil)

func (r *DueInvoiceRepository) ListDueInDays(ctx context.Context, leadDays int) ([]usecases.DueInvoice, error) {
	targetDate := biztime.DateString(biztime.NowUTC().AddDate(0, 0, leadDays))

	var rows []dueInvoiceRow
	err := r.store.From(paymentsTable).
		Select("id,amount_cents,currency,due_date,brands(email,company_name)").
		Eq("status", "pending").
		Eq("due_date", targetDate).
		Get(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to list due payments: %w", err)
	}

	invoices := make([]usecases.DueInvoice, 0, len(rows))
	for _, row := range rows {
		invoices = append(invoices, usecases.DueInvoice{
			PaymentID:   row.ID,
			BrandEmail:  row.Brand.Email,
			BrandName:   row.Brand.CompanyName,
			AmountCents: row.AmountCents,
			Currency:    row.Currency,
			DueDate:     row.DueDate,
		})
	}
	return invoices, nil
}
