package domain

import (
	"fmt"

	"github.com/whalechillz/mas-win-sub025/pkg/types"
)

// Interval is a half-open [Start, End) window in minutes since midnight
type Interval struct {
	Start int
	End   int
}

// NewInterval builds the window occupied by something starting at start for duration minutes
func NewInterval(start types.TimeString, durationMinutes int) (Interval, error) {
	s, err := start.Minutes()
	if err != nil {
		return Interval{}, err
	}
	if durationMinutes <= 0 {
		return Interval{}, fmt.Errorf("non-positive duration %d", durationMinutes)
	}
	return Interval{Start: s, End: s + durationMinutes}, nil
}

// Overlaps is the half-open overlap test: touching windows do not overlap
func (i Interval) Overlaps(other Interval) bool {
	return other.Start < i.End && i.Start < other.End
}

// Contains reports whether other lies fully inside i
func (i Interval) Contains(other Interval) bool {
	return i.Start <= other.Start && other.End <= i.End
}
