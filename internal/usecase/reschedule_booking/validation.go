package reschedule_booking

import (
	"fmt"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.DurationMinutes != nil && (*req.DurationMinutes <= 0 || *req.DurationMinutes > domain.MaxDurationMinutes) {
		return fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, domain.MaxDurationMinutes)
	}
	return nil
}
