package domain

import (
	"time"

	"github.com/whalechillz/mas-win-sub025/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus validates a raw status value
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// Booking represents a fitting/visit reservation at the store
type Booking struct {
	ID              int64
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   *string
	BookingDate     time.Time // civil date, time part ignored
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus
	Notes           *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeUpdated returns true if the booking can be rescheduled
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeConfirmed returns true if the booking is waiting for confirmation
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// Interval returns the occupied [start, end) window in minutes since midnight
func (b *Booking) Interval() (Interval, error) {
	return NewInterval(b.StartTime, b.DurationMinutes)
}

// BookingsFilter filter for listing bookings
type BookingsFilter struct {
	DateFrom         *time.Time     // inclusive, optional
	DateTo           *time.Time     // inclusive, optional
	Status           *BookingStatus // optional
	Phone            *string        // optional, normalized digits
	IncludeCancelled bool
	ExcludeID        *int64 // used by reschedule to ignore the booking itself
	Limit            uint64
	Offset           uint64
}

// SingleDay reports whether the filter targets exactly one date
func (f BookingsFilter) SingleDay() bool {
	return f.DateFrom != nil && f.DateTo != nil && SameDate(*f.DateFrom, *f.DateTo)
}
