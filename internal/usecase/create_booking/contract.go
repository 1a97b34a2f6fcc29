package create_booking

import (
	"context"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/internal/service/schedule"
)

// BookingRepository persists bookings
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// RulesLoader reads settings and the day's occupancy; inside a tx bookings are locked
type RulesLoader interface {
	Load(ctx context.Context, date time.Time, excludeID *int64) (*schedule.Range, error)
	Location() *time.Location
}

// TransactionManager runs fn in a SERIALIZABLE transaction
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier sends the best-effort customer message
type Notifier interface {
	BookingCreated(ctx context.Context, booking *domain.Booking)
}

// EventPublisher publishes lifecycle events
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
