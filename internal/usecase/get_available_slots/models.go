package get_available_slots

import (
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

// Request asks for free start times on one date.
// A nil duration falls back to the configured default duration.
type Request struct {
	Date            time.Time
	DurationMinutes *int
}

type Response struct {
	Date            time.Time
	DurationMinutes int
	Slots           []domain.AvailableSlot
	Restriction     domain.Restriction
}
