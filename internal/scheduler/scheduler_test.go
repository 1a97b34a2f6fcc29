package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	runScheduledJobs "github.com/whalechillz/mas-win-sub025/internal/usecase/run_scheduled_jobs"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type blockingRunner struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
}

func (b *blockingRunner) Execute(ctx context.Context, req *runScheduledJobs.Request) (*runScheduledJobs.Summary, error) {
	b.calls.Add(1)
	if b.release != nil {
		<-b.release
	}
	if b.err != nil {
		return nil, b.err
	}
	return &runScheduledJobs.Summary{DryRun: req.DryRun}, nil
}

func TestNew_InvalidSpec(t *testing.T) {
	_, err := New("not a spec", time.UTC, &blockingRunner{}, time.Minute, nopLogger{})
	assert.Error(t, err)
}

func TestTick_SkipsOverlappingRuns(t *testing.T) {
	runner := &blockingRunner{release: make(chan struct{})}
	s, err := New("*/10 * * * *", time.UTC, runner, time.Minute, nopLogger{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.tick()
	}()

	require.Eventually(t, func() bool { return runner.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	s.tick()
	assert.Equal(t, int32(1), runner.calls.Load())

	close(runner.release)
	wg.Wait()

	s.tick()
	assert.Equal(t, int32(2), runner.calls.Load())
}

func TestTick_ErrorIsLogged(t *testing.T) {
	runner := &blockingRunner{err: errors.New("boom")}
	s, err := New("@every 1h", time.UTC, runner, time.Minute, nopLogger{})
	require.NoError(t, err)

	assert.NotPanics(t, s.tick)
	assert.False(t, s.running.Load())
}

func TestStartStop(t *testing.T) {
	s, err := New("@every 1h", time.UTC, &blockingRunner{}, time.Minute, nopLogger{})
	require.NoError(t, err)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
