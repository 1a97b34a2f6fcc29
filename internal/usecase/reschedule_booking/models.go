package reschedule_booking

import (
	"time"

	"github.com/whalechillz/mas-win-sub025/pkg/types"
)

// Request moves a booking. A nil duration keeps the current one.
type Request struct {
	BookingID       int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes *int
}
