package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"liken/internal/shared/logger"
)

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) Execute(ctx context.Context) (int, error) {
	j.runs.Add(1)
	return 1, j.err
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

func TestPayoutSchedulerRunsImmediatelyAndOnTicks(t *testing.T) {
	job := &countingJob{}
	s := NewPayoutScheduler(job, nil, 20*time.Millisecond, &noopLogger{})

	s.Start(context.Background())
	time.Sleep(70 * time.Millisecond)
	s.Stop()

	// one immediate run plus at least two ticks
	assert.GreaterOrEqual(t, job.runs.Load(), int32(3))
}

func TestPayoutSchedulerStopIsIdempotent(t *testing.T) {
	job := &countingJob{}
	s := NewPayoutScheduler(job, nil, time.Hour, &noopLogger{})

	s.Start(context.Background())
	s.Stop()
	s.Stop()

	assert.Equal(t, int32(1), job.runs.Load())
}

func TestPayoutSchedulerStopsOnContextCancellation(t *testing.T) {
	job := &countingJob{}
	s := NewPayoutScheduler(job, nil, time.Hour, &noopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler loop did not exit after context cancellation")
	}
}

func TestPayoutSchedulerKeepsRunningAfterJobError(t *testing.T) {
	job := &countingJob{err: errors.New("cycle failed")}
	s := NewPayoutScheduler(job, nil, 20*time.Millisecond, &noopLogger{})

	s.Start(context.Background())
	time.Sleep(70 * time.Millisecond)
	s.Stop()

	assert.GreaterOrEqual(t, job.runs.Load(), int32(2))
}

func TestReminderSchedulerRunsSweep(t *testing.T) {
	job := &countingJob{}
	s := NewReminderScheduler(job, 20*time.Millisecond, &noopLogger{})

	s.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	assert.GreaterOrEqual(t, job.runs.Load(), int32(2))
}
