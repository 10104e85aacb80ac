package scheduler

import (
	"context"
	"sync"
	"time"

	"liken/internal/infrastructure/lock"
	"liken/internal/shared/logger"
)

const defaultPayoutInterval = 15 * time.Minute

// BatchJob is a periodic task that processes a batch and reports how
// many items it handled.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// PayoutScheduler drives the payout cycle on a fixed interval. The
// ticker only fires again after the previous run returned, so cycles
// never overlap within one process; the optional advisory lock extends
// that guarantee across instances.
type PayoutScheduler struct {
	runCycleUC BatchJob
	cycleLock  *lock.RedisLock
	logger     logger.Interface
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	interval   time.Duration
}

func NewPayoutScheduler(
	runCycleUC BatchJob,
	cycleLock *lock.RedisLock,
	interval time.Duration,
	logger logger.Interface,
) *PayoutScheduler {
	if interval <= 0 {
		interval = defaultPayoutInterval
	}
	return &PayoutScheduler{
		runCycleUC: runCycleUC,
		cycleLock:  cycleLock,
		logger:     logger,
		stopChan:   make(chan struct{}),
		interval:   interval,
	}
}

// Start starts the scheduler loop in a background goroutine.
func (s *PayoutScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting payout scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully and waits for the loop to exit.
// Safe to call multiple times.
func (s *PayoutScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping payout scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("payout scheduler stopped")
	})
}

func (s *PayoutScheduler) runLoop(ctx context.Context) {
	// Run immediately on startup so a restart does not delay due payouts
	s.runCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("payout scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *PayoutScheduler) runCycle(ctx context.Context) {
	if s.cycleLock != nil {
		acquired, err := s.cycleLock.TryAcquire(ctx)
		if err != nil {
			s.logger.Errorw("failed to acquire payout cycle lock", "error", err)
			return
		}
		if !acquired {
			s.logger.Debugw("payout cycle lock held elsewhere, skipping run")
			return
		}
		defer func() {
			if err := s.cycleLock.Release(ctx); err != nil {
				s.logger.Warnw("failed to release payout cycle lock", "error", err)
			}
		}()
	}

	startTime := time.Now()
	settled, err := s.runCycleUC.Execute(ctx)
	if err != nil {
		s.logger.Errorw("payout cycle failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}
	if settled > 0 {
		s.logger.Infow("payout cycle settled payouts",
			"count", settled,
			"duration", time.Since(startTime),
		)
	}
}
