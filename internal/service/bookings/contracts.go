package bookings

import (
	"context"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

// BookingRepository is the part of the booking storage the service reads and mutates
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason *string) error
}

// TransactionManager runs status transitions with the row locked
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier sends best-effort customer messages
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *domain.Booking)
	BookingCancelled(ctx context.Context, booking *domain.Booking)
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
