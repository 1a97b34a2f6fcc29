package get_available_slots

import (
	"context"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/service/schedule"
)

// RulesLoader reads settings, hours, bookings and blocks
type RulesLoader interface {
	Load(ctx context.Context, date time.Time, excludeID *int64) (*schedule.Range, error)
	Location() *time.Location
}

// Logger is the printf-style service logger
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
