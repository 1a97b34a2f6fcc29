package run_scheduled_jobs

import "errors"

// ErrInternal is returned when the candidate campaigns cannot be listed.
// Per-campaign failures are reported in the summary instead.
var ErrInternal = errors.New("run_scheduled_jobs: internal error")
