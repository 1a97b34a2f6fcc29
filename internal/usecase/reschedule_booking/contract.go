package reschedule_booking

import (
	"context"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/internal/service/schedule"
	"github.com/whalechillz/mas-win-sub025/pkg/types"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateSchedule(ctx context.Context, id int64, date time.Time, start types.TimeString, durationMinutes int) error
}

type RulesLoader interface {
	Load(ctx context.Context, date time.Time, excludeID *int64) (*schedule.Range, error)
	Location() *time.Location
}

type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

type Notifier interface {
	BookingRescheduled(ctx context.Context, booking *domain.Booking)
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, v any) error
}

type Metrics interface {
	ObserveBooking(operation, result string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
