package get_next_available_date

import "errors"

var (
	ErrInvalidInput = errors.New("get_next_available_date: invalid input data")

	// ErrNoAvailableDate is returned when no date inside the horizon has a free slot
	ErrNoAvailableDate = errors.New("get_next_available_date: no available date")

	ErrInternal = errors.New("get_next_available_date: internal error")
)
