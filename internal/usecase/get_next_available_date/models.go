package get_next_available_date

import (
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

type Request struct {
	DurationMinutes *int
}

type Response struct {
	Date            time.Time
	DurationMinutes int
	Slots           []domain.AvailableSlot
}
