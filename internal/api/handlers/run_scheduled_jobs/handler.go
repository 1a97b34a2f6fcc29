package run_scheduled_jobs

import (
	"context"
	"net/http"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	"github.com/whalechillz/mas-win-sub025/internal/api/middleware"
	runScheduledJobs "github.com/whalechillz/mas-win-sub025/internal/usecase/run_scheduled_jobs"
)

type RunScheduledJobsUseCase interface {
	Execute(ctx context.Context, req *runScheduledJobs.Request) (*runScheduledJobs.Summary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	useCase RunScheduledJobsUseCase
	logger  Logger
}

func NewHandler(useCase RunScheduledJobsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET|POST /api/v1/cron/scheduled-jobs[?dryRun=true]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dryRun := handlers.QueryBool(r, "dryRun")

	summary, err := h.useCase.Execute(r.Context(), &runScheduledJobs.Request{DryRun: dryRun})
	if err != nil {
		h.logger.Error("%s /cron/scheduled-jobs - Failed: request_id=%s, error=%v", r.Method, middleware.GetRequestID(r.Context()), err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("%s /cron/scheduled-jobs - due=%d dispatched=%d failed=%d reconciled=%d deferred=%d dry_run=%t",
		r.Method, summary.Due, summary.Dispatched, summary.DispatchFailed, summary.Reconciled, summary.Deferred, dryRun)
	handlers.RespondJSON(w, http.StatusOK, summary)
}
