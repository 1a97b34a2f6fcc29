package settings

import "errors"

var (
	// ErrSettingsNotFound is returned when the singleton settings row is missing
	ErrSettingsNotFound = errors.New("settings.repository: settings not found")

	// ErrBlockNotFound is returned when no block matches the id
	ErrBlockNotFound = errors.New("settings.repository: block not found")

	ErrBuildQuery = errors.New("settings.repository: failed to build query")
	ErrExecQuery  = errors.New("settings.repository: failed to execute query")
	ErrScanRow    = errors.New("settings.repository: failed to scan row")
)
