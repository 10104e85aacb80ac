package scheduler

import (
	"context"
	"sync"
	"time"

	"liken/internal/shared/logger"
)

const defaultReminderInterval = 24 * time.Hour

// ReminderScheduler runs the daily payment reminder sweep.
type ReminderScheduler struct {
	sendRemindersUC BatchJob
	logger          logger.Interface
	stopChan        chan struct{}
	stopOnce        sync.Once
	wg              sync.WaitGroup
	interval        time.Duration
}

func NewReminderScheduler(
	sendRemindersUC BatchJob,
	interval time.Duration,
	logger logger.Interface,
) *ReminderScheduler {
	if interval <= 0 {
		interval = defaultReminderInterval
	}
	return &ReminderScheduler{
		sendRemindersUC: sendRemindersUC,
		logger:          logger,
		stopChan:        make(chan struct{}),
		interval:        interval,
	}
}

// Start starts the scheduler loop in a background goroutine.
func (s *ReminderScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting reminder scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully. Safe to call multiple times.
func (s *ReminderScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping reminder scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("reminder scheduler stopped")
	})
}

func (s *ReminderScheduler) runLoop(ctx context.Context) {
	s.sendReminders(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("reminder scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sendReminders(ctx)
		}
	}
}

func (s *ReminderScheduler) sendReminders(ctx context.Context) {
	startTime := time.Now()
	sent, err := s.sendRemindersUC.Execute(ctx)
	if err != nil {
		s.logger.Errorw("payment reminder sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}
	if sent > 0 {
		s.logger.Infow("payment reminders sent",
			"count", sent,
			"duration", time.Since(startTime),
		)
	}
}
