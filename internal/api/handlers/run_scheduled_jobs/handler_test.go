package run_scheduled_jobs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	runScheduledJobs "github.com/whalechillz/mas-win-sub025/internal/usecase/run_scheduled_jobs"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *runScheduledJobs.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *runScheduledJobs.Request) (*runScheduledJobs.Summary, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &runScheduledJobs.Summary{DryRun: req.DryRun, Due: 2, Dispatched: 2}, nil
}

func TestHandle(t *testing.T) {
	uc := &fakeUseCase{}
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/cron/scheduled-jobs?dryRun=true", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.got.DryRun)
	assert.Contains(t, rec.Body.String(), `"dispatched":2`)
}

func TestHandle_Error(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeUseCase{err: errors.New("db")}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodPost, "/cron/scheduled-jobs", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
