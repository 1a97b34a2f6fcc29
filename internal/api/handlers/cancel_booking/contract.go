package cancel_booking

import (
	"context"

	"github.com/whalechillz/mas-win-sub025/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, id int64, reason *string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
