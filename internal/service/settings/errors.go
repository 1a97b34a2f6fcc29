package settings

import "errors"

var (
	// ErrBlockNotFound is returned when deleting a block that does not exist
	ErrBlockNotFound = errors.New("block not found")

	// ErrInvalidInput is returned for out-of-range settings, malformed hours or blocks
	ErrInvalidInput = errors.New("invalid input data")

	ErrInternal = errors.New("service: internal error")
)
