package get_available_slots

import (
	"fmt"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
		}
		if *req.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxDurationMinutes)
		}
	}
	return nil
}
