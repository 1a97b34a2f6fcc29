package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesInDay = 24 * 60
	layout       = "15:04"
)

var (
	// ErrInvalidTimeString is returned for values that are not HH:MM (or HH:MM:SS)
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow is returned when arithmetic leaves the 00:00-24:00 range
	ErrTimeOverflow = errors.New("time string out of day range")
)

// TimeString is a wall-clock time of day in "HH:MM" form.
// "24:00" is accepted as the end of day so operating windows can close at midnight.
type TimeString string

// NewTimeStringFromString parses "HH:MM" or "HH:MM:SS" (seconds are dropped)
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := parseMinutes(s)
	if err != nil {
		return "", err
	}
	return fromMinutes(minutes), nil
}

// NewTimeString takes the wall-clock part of t in t's location
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(layout))
}

// FromMinutes builds a TimeString from minutes since midnight
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > minutesInDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return fromMinutes(minutes), nil
}

// Minutes returns minutes since midnight
func (t TimeString) Minutes() (int, error) {
	return parseMinutes(string(t))
}

// AddMinutes shifts the time, failing when the result leaves the day
func (t TimeString) AddMinutes(delta int) (TimeString, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return FromMinutes(minutes + delta)
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return string(t) < string(other)
	}
	return a < b
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(t)
}

// Equal compares by minutes so "09:00" equals "09:00:00"
func (t TimeString) Equal(other TimeString) bool {
	return !t.IsBefore(other) && !other.IsBefore(t)
}

// IsZero reports whether the value is empty
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks the format
func (t TimeString) Validate() error {
	_, err := t.Minutes()
	return err
}

func (t TimeString) String() string {
	return string(t)
}

// On places the time of day on the civil date of day in loc
func (t TimeString) On(day time.Time, loc *time.Location) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(time.Duration(minutes) * time.Minute), nil
}

// Scan implements sql.Scanner for TIME columns
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

func parseMinutes(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || hours > 24 || (hours == 24 && minutes != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return hours*60 + minutes, nil
}

func fromMinutes(minutes int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}
