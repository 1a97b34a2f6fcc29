package objectstorage

import "errors"

var (
	ErrNotFound        = errors.New("objectstorage: object not found")
	ErrUnavailable     = errors.New("objectstorage: storage unavailable")
	ErrRejected        = errors.New("objectstorage: request rejected")
	ErrInvalidResponse = errors.New("objectstorage: invalid response")
	ErrTooLarge        = errors.New("objectstorage: object too large")
	ErrInvalidPath     = errors.New("objectstorage: invalid path")
)
