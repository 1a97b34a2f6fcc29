package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCannotCancel is returned when the booking is already cancelled
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCannotConfirm is returned when the booking is not pending
	ErrCannotConfirm = errors.New("booking cannot be confirmed")

	// ErrInvalidInput is returned for a malformed filter or reason
	ErrInvalidInput = errors.New("invalid input data")

	ErrInternal = errors.New("service: internal error")
)
