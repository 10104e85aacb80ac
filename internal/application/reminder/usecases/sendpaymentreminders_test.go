package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"liken/internal/shared/logger"
)

type mockInvoiceReader struct {
	mock.Mock
}

func (m *mockInvoiceReader) ListDueInDays(ctx context.Context, leadDays int) ([]DueInvoice, error) {
	args := m.Called(ctx, leadDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]DueInvoice), args.Error(1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendPaymentReminder(ctx context.Context, invoice DueInvoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

type noopLogger struct{}

func (l *noopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (l *noopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (l *noopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (l *noopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (l *noopLogger) Fatalw(msg string, keysAndValues ...interface{}) {}
func (l *noopLogger) With(keysAndValues ...interface{}) logger.Interface {
	return l
}
func (l *noopLogger) Named(name string) logger.Interface {
	return l
}

func invoice(id, email string) DueInvoice {
	return DueInvoice{
		PaymentID:   id,
		BrandEmail:  email,
		BrandName:   "Acme Co",
		AmountCents: 125000,
		Currency:    "USD",
		DueDate:     time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestSendPaymentRemindersSendsAll(t *testing.T) {
	reader := new(mockInvoiceReader)
	sender := new(mockSender)

	due := []DueInvoice{invoice("pay-1", "a@example.com"), invoice("pay-2", "b@example.com")}
	reader.On("ListDueInDays", mock.Anything, 5).Return(due, nil)
	sender.On("SendPaymentReminder", mock.Anything, due[0]).Return(nil)
	sender.On("SendPaymentReminder", mock.Anything, due[1]).Return(nil)

	uc := NewSendPaymentRemindersUseCase(reader, sender, 5, &noopLogger{})

	sent, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	sender.AssertExpectations(t)
}

func TestSendPaymentRemindersFailedSendDoesNotAbort(t *testing.T) {
	reader := new(mockInvoiceReader)
	sender := new(mockSender)

	due := []DueInvoice{invoice("pay-1", "a@example.com"), invoice("pay-2", "b@example.com")}
	reader.On("ListDueInDays", mock.Anything, 5).Return(due, nil)
	sender.On("SendPaymentReminder", mock.Anything, due[0]).Return(errors.New("smtp unavailable"))
	sender.On("SendPaymentReminder", mock.Anything, due[1]).Return(nil)

	uc := NewSendPaymentRemindersUseCase(reader, sender, 5, &noopLogger{})

	sent, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestSendPaymentRemindersSkipsMissingEmail(t *testing.T) {
	reader := new(mockInvoiceReader)
	sender := new(mockSender)

	reader.On("ListDueInDays", mock.Anything, 5).Return([]DueInvoice{invoice("pay-1", "")}, nil)

	uc := NewSendPaymentRemindersUseCase(reader, sender, 5, &noopLogger{})

	sent, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	sender.AssertNotCalled(t, "SendPaymentReminder", mock.Anything, mock.Anything)
}

func TestSendPaymentRemindersReaderFailure(t *testing.T) {
	reader := new(mockInvoiceReader)
	reader.On("ListDueInDays", mock.Anything, 5).Return(nil, errors.New("store unavailable"))

	uc := NewSendPaymentRemindersUseCase(reader, new(mockSender), 5, &noopLogger{})

	sent, err := uc.Execute(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, sent)
}

func TestSendPaymentRemindersDefaultLeadDays(t *testing.T) {
	reader := new(mockInvoiceReader)
	reader.On("ListDueInDays", mock.Anything, 5).Return([]DueInvoice{}, nil)

	uc := NewSendPaymentRemindersUseCase(reader, new(mockSender), 0, &noopLogger{})

	sent, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	reader.AssertExpectations(t)
}
