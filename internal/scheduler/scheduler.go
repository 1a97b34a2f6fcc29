package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	runScheduledJobs "github.com/whalechillz/mas-win-sub025/internal/usecase/run_scheduled_jobs"
)

type JobRunner interface {
	Execute(ctx context.Context, req *runScheduledJobs.Request) (*runScheduledJobs.Summary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler triggers the scheduled-jobs sweep in process. A run that is still
// going when the next tick fires is skipped rather than overlapped.
type Scheduler struct {
	cron    *cron.Cron
	runner  JobRunner
	timeout time.Duration
	running atomic.Bool
	logger  Logger
}

// New parses spec (standard 5-field cron) in the business location
func New(spec string, location *time.Location, runner JobRunner, timeout time.Duration, logger Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(location)),
		runner:  runner,
		timeout: timeout,
		logger:  logger,
	}

	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("scheduler: invalid spec %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler: started")
}

// Stop prevents new runs and waits for the current one up to ctx's deadline
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		s.logger.Info("scheduler: stopped")
	case <-ctx.Done():
		s.logger.Warn("scheduler: stop timed out with a run in progress")
	}
}

func (s *Scheduler) tick() {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("scheduler: previous run still in progress, skipping")
		return
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	summary, err := s.runner.Execute(ctx, &runScheduledJobs.Request{})
	if err != nil {
		s.logger.Error("scheduler: run failed: %v", err)
		return
	}
	s.logger.Info("scheduler: due=%d dispatched=%d failed=%d reconciled=%d deferred=%d",
		summary.Due, summary.Dispatched, summary.DispatchFailed, summary.Reconciled, summary.Deferred)
}
