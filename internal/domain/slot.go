package domain

import "github.com/whalechillz/mas-win-sub025/pkg/types"

// Restriction explains why a whole date has no slots
type Restriction string

const (
	RestrictionNone           Restriction = ""
	RestrictionPastDate       Restriction = "past_date"
	RestrictionSameDay        Restriction = "same_day_disabled"
	RestrictionWeekend        Restriction = "weekend_disabled"
	RestrictionMaxAdvanceDays Restriction = "max_advance_days"
	RestrictionClosed         Restriction = "closed"
)

// AvailableSlot represents a bookable start time for a given duration
type AvailableSlot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}

// DayAvailability is the calculator output for one date
type DayAvailability struct {
	Slots       []AvailableSlot
	Restriction Restriction
}

// IsEmpty returns true if nothing can be booked on that date
func (d *DayAvailability) IsEmpty() bool {
	return len(d.Slots) == 0
}

// StartTimes returns slot start times in order
func (d *DayAvailability) StartTimes() []types.TimeString {
	out := make([]types.TimeString, len(d.Slots))
	for i, s := range d.Slots {
		out[i] = s.StartTime
	}
	return out
}
