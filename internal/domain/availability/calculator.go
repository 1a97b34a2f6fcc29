// Package availability computes bookable start times for a date from the
// operating rule set, existing bookings and blocked windows. Everything here is
// pure so the same checks run for the public slot query and inside the
// booking write transaction.
package availability

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/pkg/types"
)

var (
	// ErrInvalidDuration is returned for zero or negative durations
	ErrInvalidDuration = errors.New("availability: duration must be positive")

	// ErrDateRestricted is returned when a blackout rule covers the whole date
	ErrDateRestricted = errors.New("availability: date is not bookable")

	// ErrOutsideOperatingHours is returned when the interval is not inside an open window
	ErrOutsideOperatingHours = errors.New("availability: outside operating hours")

	// ErrTooSoon is returned when the start violates the minimum advance hours
	ErrTooSoon = errors.New("availability: start is within the minimum advance window")

	// ErrOverlap is returned when the interval intersects a booking or a block
	ErrOverlap = errors.New("availability: interval overlaps an existing booking")
)

// Input is everything the calculator needs for one date.
// Date and Now must already be expressed in Location.
type Input struct {
	Date            time.Time
	DurationMinutes int
	Now             time.Time
	Location        *time.Location
	Settings        domain.BookingSettings
	Hours           []*domain.OperatingHours
	Bookings        []*domain.Booking
	Blocks          []*domain.BookingBlock
}

// Compute returns the ordered list of free start times for in.Date
func Compute(in Input) (domain.DayAvailability, error) {
	if in.DurationMinutes <= 0 {
		return domain.DayAvailability{}, ErrInvalidDuration
	}

	if r := DateRestriction(in.Date, in.Now, in.Settings); r != domain.RestrictionNone {
		return domain.DayAvailability{Slots: []domain.AvailableSlot{}, Restriction: r}, nil
	}

	windows := windowsFor(in.Hours, in.Date.Weekday())
	if len(windows) == 0 {
		return domain.DayAvailability{Slots: []domain.AvailableSlot{}, Restriction: domain.RestrictionClosed}, nil
	}

	busy := busyIntervals(in.Bookings, in.Blocks)
	earliest := in.Now.Add(time.Duration(in.Settings.MinAdvanceHours) * time.Hour)
	step := in.Settings.SlotStepMinutes
	if step <= 0 {
		step = domain.DefaultSlotStepMinutes
	}

	seen := make(map[int]struct{})
	starts := make([]int, 0)
	for _, w := range windows {
		for s := w.Start; s+in.DurationMinutes <= w.End; s += step {
			if _, ok := seen[s]; ok {
				continue
			}
			cand := domain.Interval{Start: s, End: s + in.DurationMinutes}
			if overlapsAny(cand, busy) {
				continue
			}
			if startsBefore(in.Date, s, in.Location, earliest) {
				continue
			}
			seen[s] = struct{}{}
			starts = append(starts, s)
		}
	}
	sort.Ints(starts)

	slots := make([]domain.AvailableSlot, 0, len(starts))
	for _, s := range starts {
		start, err := types.FromMinutes(s)
		if err != nil {
			return domain.DayAvailability{}, err
		}
		end, err := types.FromMinutes(s + in.DurationMinutes)
		if err != nil {
			return domain.DayAvailability{}, err
		}
		slots = append(slots, domain.AvailableSlot{
			StartTime:       start,
			EndTime:         end,
			DurationMinutes: in.DurationMinutes,
		})
	}

	return domain.DayAvailability{Slots: slots}, nil
}

// Check validates one concrete interval the same way Compute does, without
// requiring the start to sit on the slot grid.
func Check(in Input, start types.TimeString) error {
	if in.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}

	if r := DateRestriction(in.Date, in.Now, in.Settings); r != domain.RestrictionNone {
		return fmt.Errorf("%w: %s", ErrDateRestricted, r)
	}

	cand, err := domain.NewInterval(start, in.DurationMinutes)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutsideOperatingHours, err)
	}

	inside := false
	for _, w := range windowsFor(in.Hours, in.Date.Weekday()) {
		if w.Contains(cand) {
			inside = true
			break
		}
	}
	if !inside {
		return ErrOutsideOperatingHours
	}

	earliest := in.Now.Add(time.Duration(in.Settings.MinAdvanceHours) * time.Hour)
	if startsBefore(in.Date, cand.Start, in.Location, earliest) {
		return fmt.Errorf("%w: must book at least %d hours ahead", ErrTooSoon, in.Settings.MinAdvanceHours)
	}

	if overlapsAny(cand, busyIntervals(in.Bookings, in.Blocks)) {
		return ErrOverlap
	}

	return nil
}

// DateRestriction returns the blackout rule covering date, if any
func DateRestriction(date, now time.Time, s domain.BookingSettings) domain.Restriction {
	days := daysBetween(now, date)

	switch {
	case days < 0:
		return domain.RestrictionPastDate
	case days == 0 && s.DisableSameDayBooking:
		return domain.RestrictionSameDay
	case s.DisableWeekendBooking && domain.IsWeekend(date):
		return domain.RestrictionWeekend
	case s.MaxAdvanceDays > 0 && days > s.MaxAdvanceDays:
		return domain.RestrictionMaxAdvanceDays
	default:
		return domain.RestrictionNone
	}
}

// daysBetween counts civil days from a to b, ignoring locations
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func windowsFor(hours []*domain.OperatingHours, day time.Weekday) []domain.Interval {
	out := make([]domain.Interval, 0)
	for _, h := range hours {
		if h == nil || !h.IsAvailable || h.DayOfWeek != day {
			continue
		}
		w, err := h.Window()
		if err != nil || w.End <= w.Start {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

func busyIntervals(bookings []*domain.Booking, blocks []*domain.BookingBlock) []domain.Interval {
	out := make([]domain.Interval, 0, len(bookings)+len(blocks))
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		iv, err := b.Interval()
		if err != nil {
			continue
		}
		out = append(out, iv)
	}
	for _, b := range blocks {
		if b == nil || b.IsVirtual {
			continue
		}
		iv, err := b.Interval()
		if err != nil {
			continue
		}
		out = append(out, iv)
	}
	return out
}

func overlapsAny(cand domain.Interval, busy []domain.Interval) bool {
	for _, b := range busy {
		if cand.Overlaps(b) {
			return true
		}
	}
	return false
}

func startsBefore(date time.Time, startMinute int, loc *time.Location, earliest time.Time) bool {
	if loc == nil {
		loc = date.Location()
	}
	start := domain.DateIn(date, loc).Add(time.Duration(startMinute) * time.Minute)
	return start.Before(earliest)
}
