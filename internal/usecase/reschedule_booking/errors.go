package reschedule_booking

import "errors"

var (
	ErrInvalidInput     = errors.New("reschedule_booking: invalid input data")
	ErrBookingNotFound  = errors.New("reschedule_booking: booking not found")
	ErrCannotReschedule = errors.New("reschedule_booking: booking cannot be rescheduled in current status")
	ErrDateNotBookable  = errors.New("reschedule_booking: date is not bookable")
	ErrInvalidTimeSlot  = errors.New("reschedule_booking: invalid time slot")
	ErrTooLateToBook    = errors.New("reschedule_booking: too late to book this slot")
	ErrSlotNotAvailable = errors.New("reschedule_booking: slot is not available")
	ErrInternal         = errors.New("reschedule_booking: internal error")
)
