package analytics_report

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	"github.com/whalechillz/mas-win-sub025/internal/integrations/analytics"
)

const (
	msgInvalidRange   = "기간이 올바르지 않습니다 (YYYY-MM-DD 또는 NdaysAgo, today)"
	msgInvalidFields  = "dimensions 또는 metrics 값이 올바르지 않습니다"
	msgDisabled       = "애널리틱스가 설정되지 않았습니다"
	msgAnalyticsError = "애널리틱스 조회에 실패했습니다"

	defaultStart  = "7daysAgo"
	defaultEnd    = "today"
	defaultMetric = "activeUsers"
	maxFields     = 9
	maxRows       = 1000
)

var (
	dateExpr  = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}|\d+daysAgo|today|yesterday)$`)
	fieldExpr = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_:]*$`)
)

type Handler struct {
	runner ReportRunner
	logger Logger
}

func NewHandler(runner ReportRunner, logger Logger) *Handler {
	return &Handler{
		runner: runner,
		logger: logger,
	}
}

// Handle GET /api/v1/admin/analytics/report?startDate&endDate&dimensions=a,b&metrics=c,d
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start := orDefault(q.Get("startDate"), defaultStart)
	end := orDefault(q.Get("endDate"), defaultEnd)
	if !dateExpr.MatchString(start) || !dateExpr.MatchString(end) {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	dimensions, ok := splitFields(q.Get("dimensions"))
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidFields)
		return
	}
	metrics, ok := splitFields(orDefault(q.Get("metrics"), defaultMetric))
	if !ok || len(metrics) == 0 {
		handlers.RespondBadRequest(w, msgInvalidFields)
		return
	}

	limit, err := handlers.QueryInt(r, "limit")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidFields)
		return
	}
	rows := maxRows
	if limit != nil && *limit > 0 && *limit < maxRows {
		rows = *limit
	}

	report, err := h.runner.RunReport(r.Context(), analytics.ReportRequest{
		StartDate:  start,
		EndDate:    end,
		Dimensions: dimensions,
		Metrics:    metrics,
		Limit:      rows,
	})
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrDisabled):
			handlers.RespondError(w, http.StatusServiceUnavailable, msgDisabled)
		default:
			h.logger.Error("GET /admin/analytics/report - Failed: %v", err)
			handlers.RespondUpstreamError(w, msgAnalyticsError, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func splitFields(raw string) ([]string, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, true
	}
	parts := strings.Split(raw, ",")
	if len(parts) > maxFields {
		return nil, false
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if !fieldExpr.MatchString(p) {
			return nil, false
		}
		out = append(out, p)
	}
	return out, true
}
