package analytics_report

import (
	"context"

	"github.com/whalechillz/mas-win-sub025/internal/integrations/analytics"
)

type ReportRunner interface {
	RunReport(ctx context.Context, r analytics.ReportRequest) (*analytics.Report, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
