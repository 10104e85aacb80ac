package usecases

import (
	"context"
	"fmt"
	"time"

	"liken/internal/shared/logger"
)

// DueInvoice is a pending brand payment approaching its due date.
type DueInvoice struct {
	PaymentID   string
	BrandEmail  string
	BrandName   string
	AmountCents int64
	Currency    string
	DueDate     time.Time
}

// DueInvoiceReader lists pending payments due in exactly leadDays days.
type DueInvoiceReader interface {
	ListDueInDays(ctx context.Context, leadDays int) ([]DueInvoice, error)
}

// ReminderSender delivers a payment reminder to the brand.
type ReminderSender interface {
	SendPaymentReminder(ctx context.Context, invoice DueInvoice) error
}

// SendPaymentRemindersUseCase emails every brand whose pending payment
// is due in the configured number of days. A failed send is logged and
// never stops the sweep.
type SendPaymentRemindersUseCase struct {
	invoices DueInvoiceReader
	sender   ReminderSender
	leadDays int
	logger   logger.Interface
}

func NewSendPaymentRemindersUseCase(
	invoices DueInvoiceReader,
	sender ReminderSender,
	leadDays int,
	logger logger.Interface,
) *SendPaymentRemindersUseCase {
	if leadDays <= 0 {
		leadDays = 5
	}
	return &SendPaymentRemindersUseCase{
		invoices: invoices,
		sender:   sender,
		leadDays: leadDays,
		logger:   logger,
	}
}

// Execute runs one sweep and returns the number of reminders sent.
func (uc *SendPaymentRemindersUseCase) Execute(ctx context.Context) (int, error) {
	due, err := uc.invoices.ListDueInDays(ctx, uc.leadDays)
	if err != nil {
		uc.logger.Errorw("failed to list due invoices", "error", err)
		return 0, fmt.Errorf("failed to list due invoices: %w", err)
	}

	if len(due) == 0 {
		uc.logger.Debugw("no invoices due for reminders", "lead_days", uc.leadDays)
		return 0, nil
	}

	sent := 0
	for _, invoice := range due {
		if invoice.BrandEmail == "" {
			uc.logger.Warnw("invoice has no brand email", "payment_id", invoice.PaymentID)
			continue
		}
		if err := uc.sender.SendPaymentReminder(ctx, invoice); err != nil {
			uc.logger.Errorw("failed to send payment reminder",
				"error", err,
				"payment_id", invoice.PaymentID,
				"brand_email", invoice.BrandEmail)
			continue
		}
		sent++
	}

	uc.logger.Infow("payment reminder sweep completed", "due", len(due), "sent", sent)
	return sent, nil
}
