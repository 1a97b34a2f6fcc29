package get_available_slots

import "errors"

var (
	// ErrInvalidInput is returned for a missing date or a non-positive duration
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	ErrInternal = errors.New("get_available_slots: internal error")
)
