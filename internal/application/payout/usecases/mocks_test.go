package usecases

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"liken/internal/application/payout/settlementgateway"
	"liken/internal/domain/payout"
	"liken/internal/shared/logger"
)

type mockSettingsRepo struct {
	mock.Mock
}

func (m *mockSettingsRepo) List(ctx context.Context, limit, offset int) ([]*payout.PayoutSettings, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payout.PayoutSettings), args.Error(1)
}

func (m *mockSettingsRepo) GetByAgencyID(ctx context.Context, agencyID string) (*payout.PayoutSettings, error) {
	args := m.Called(ctx, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payout.PayoutSettings), args.Error(1)
}

func (m *mockSettingsRepo) Upsert(ctx context.Context, settings *payout.PayoutSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *mockSettingsRepo) SetLastPayoutAt(ctx context.Context, agencyID string, paidAt time.Time) error {
	args := m.Called(ctx, agencyID, paidAt)
	return args.Error(0)
}

type mockRecordRepo struct {
	mock.Mock
}

func (m *mockRecordRepo) SumUnclaimed(ctx context.Context, agencyID string) (int64, error) {
	args := m.Called(ctx, agencyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRecordRepo) LinkToPayoutRequest(ctx context.Context, agencyID, requestID string) (int, error) {
	args := m.Called(ctx, agencyID, requestID)
	return args.Int(0), args.Error(1)
}

func (m *mockRecordRepo) UnlinkFromPayoutRequest(ctx context.Context, requestID string) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

type mockRequestRepo struct {
	mock.Mock
}

func (m *mockRequestRepo) Create(ctx context.Context, request *payout.PayoutRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *mockRequestRepo) FindActiveByCycleKey(ctx context.Context, cycleKey string) (*payout.PayoutRequest, error) {
	args := m.Called(ctx, cycleKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payout.PayoutRequest), args.Error(1)
}

func (m *mockRequestRepo) ListByAgencyID(ctx context.Context, agencyID string, limit, offset int) ([]*payout.PayoutRequest, error) {
	args := m.Called(ctx, agencyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payout.PayoutRequest), args.Error(1)
}

func (m *mockRequestRepo) UpdateStatus(ctx context.Context, request *payout.PayoutRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) ExecutePayout(ctx context.Context, cmd settlementgateway.PayoutCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

// noopLogger keeps the use cases quiet in tests.
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
