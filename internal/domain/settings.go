package domain

import (
	"time"

	"github.com/whalechillz/mas-win-sub025/pkg/types"
)

// BookingSettingsID is the id of the singleton settings row
const BookingSettingsID = "00000000-0000-0000-0000-000000000001"

// BookingSettings is the operating rule set used by availability checks
type BookingSettings struct {
	DisableSameDayBooking  bool
	DisableWeekendBooking  bool
	MinAdvanceHours        int
	MaxAdvanceDays         int // 0 = unlimited
	SlotStepMinutes        int
	DefaultDurationMinutes int
	UpdatedAt              time.Time
}

// DefaultBookingSettings is used when the settings row does not exist yet
func DefaultBookingSettings() BookingSettings {
	return BookingSettings{
		DisableSameDayBooking:  false,
		DisableWeekendBooking:  false,
		MinAdvanceHours:        DefaultMinAdvanceHours,
		MaxAdvanceDays:         DefaultMaxAdvanceDays,
		SlotStepMinutes:        DefaultSlotStepMinutes,
		DefaultDurationMinutes: DefaultDurationMinutes,
	}
}

// HasAdvanceLimit returns true if booking too far ahead is restricted
func (s *BookingSettings) HasAdvanceLimit() bool {
	return s.MaxAdvanceDays > 0
}

// OperatingHours is one open window on a weekday. A weekday may have several.
type OperatingHours struct {
	ID          int64
	DayOfWeek   time.Weekday
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// Window returns the window as an interval
func (h *OperatingHours) Window() (Interval, error) {
	start, err := h.StartTime.Minutes()
	if err != nil {
		return Interval{}, err
	}
	end, err := h.EndTime.Minutes()
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}

// BookingBlock is an admin-entered unavailable window.
// Virtual blocks are shown as "booked" to customers but do not remove availability.
type BookingBlock struct {
	ID              int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	IsVirtual       bool
	Reason          *string
	CreatedAt       time.Time
}

// Interval returns the blocked window
func (b *BookingBlock) Interval() (Interval, error) {
	return NewInterval(b.StartTime, b.DurationMinutes)
}
