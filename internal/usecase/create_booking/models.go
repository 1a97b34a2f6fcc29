package create_booking

import (
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/pkg/types"
)

// Request is a booking form submission. Admin-created bookings may start confirmed.
type Request struct {
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   *string
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes *int
	Notes           *string
	Status          domain.BookingStatus // empty means pending
}
