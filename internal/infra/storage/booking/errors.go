package booking

import "errors"

var (
	// ErrBookingNotFound is returned when no booking matches the id
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable is returned when the exclusion constraint rejects an overlapping booking
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	ErrBuildQuery = errors.New("booking.repository: failed to build query")
	ErrExecQuery  = errors.New("booking.repository: failed to execute query")
	ErrScanRow    = errors.New("booking.repository: failed to scan row")
)
