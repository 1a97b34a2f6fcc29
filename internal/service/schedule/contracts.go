package schedule

import (
	"context"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

type SettingsRepository interface {
	GetSettings(ctx context.Context) (*domain.BookingSettings, error)
	ListHours(ctx context.Context) ([]*domain.OperatingHours, error)
	ListBlocksBetween(ctx context.Context, from, to time.Time) ([]*domain.BookingBlock, error)
}

type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// TimeProvider returns the current time (fixed in tests)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider is the production clock
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
