package domain

import "time"

// Default booking rules
const (
	DefaultMinAdvanceHours      = 24
	DefaultMaxAdvanceDays       = 14
	DefaultSlotStepMinutes      = 30
	DefaultDurationMinutes      = 60
	DefaultNextAvailableHorizon = 60 // days searched when MaxAdvanceDays is unlimited
)

// Business validation constants
const (
	MinSlotStepMinutes          = 5
	MaxSlotStepMinutes          = 240
	MaxDurationMinutes          = 480
	MaxAdvanceDaysLimit         = 365
	MaxAdvanceHoursLimit        = 24 * 14
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxCustomerNameLength       = 100
)

// DateFormat is the wire and storage layout for civil dates
const DateFormat = "2006-01-02"

// ActiveStatuses are the statuses that occupy a slot
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// SameDate compares civil dates ignoring location and time
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateIn returns midnight of t's civil date in loc
func DateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// IsWeekend reports Saturday or Sunday
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
