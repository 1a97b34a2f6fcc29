package create_booking

import "errors"

var (
	// ErrInvalidInput is returned for malformed customer data, date, time or duration
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrDateNotBookable is returned when a blackout rule covers the date
	ErrDateNotBookable = errors.New("create_booking: date is not bookable")

	// ErrInvalidTimeSlot is returned when the interval is outside operating hours
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook is returned when the start violates the minimum advance hours
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotNotAvailable is returned when the interval overlaps another booking,
	// including conflicts detected by the database on commit
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	ErrInternal = errors.New("create_booking: internal error")
)
