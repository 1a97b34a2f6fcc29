package get_next_available_date

import (
	"context"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/internal/service/schedule"
)

type RulesLoader interface {
	Settings(ctx context.Context) (domain.BookingSettings, error)
	LoadRange(ctx context.Context, from, to time.Time, excludeID *int64) (*schedule.Range, error)
	Today() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
