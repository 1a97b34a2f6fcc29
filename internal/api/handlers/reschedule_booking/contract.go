package reschedule_booking

import (
	"context"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	rescheduleBooking "github.com/whalechillz/mas-win-sub025/internal/usecase/reschedule_booking"
)

type RescheduleBookingUseCase interface {
	Execute(ctx context.Context, req *rescheduleBooking.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
