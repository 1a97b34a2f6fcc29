package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/internal/domain/availability"
	settingsRepo "github.com/whalechillz/mas-win-sub025/internal/infra/storage/settings"
)

var ErrLoad = errors.New("schedule: failed to load booking rules")

// Loader reads the operating rule set and occupancy for the availability calculator.
// Inside a transaction the single-day bookings are read FOR UPDATE by the repository.
type Loader struct {
	settingsRepo SettingsRepository
	bookingRepo  BookingRepository
	location     *time.Location
	timeProvider TimeProvider
}

func NewLoader(settingsRepo SettingsRepository, bookingRepo BookingRepository, location *time.Location) *Loader {
	return &Loader{
		settingsRepo: settingsRepo,
		bookingRepo:  bookingRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
	}
}

// WithTimeProvider swaps the clock
func (l *Loader) WithTimeProvider(tp TimeProvider) *Loader {
	l.timeProvider = tp
	return l
}

// Location is the business timezone
func (l *Loader) Location() *time.Location {
	return l.location
}

// Now is the current time in the business timezone
func (l *Loader) Now() time.Time {
	return l.timeProvider.Now().In(l.location)
}

// Today is midnight of the current business date
func (l *Loader) Today() time.Time {
	return domain.DateIn(l.Now(), l.location)
}

// Settings returns the stored settings or defaults when the row does not exist yet
func (l *Loader) Settings(ctx context.Context) (domain.BookingSettings, error) {
	s, err := l.settingsRepo.GetSettings(ctx)
	if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		return domain.DefaultBookingSettings(), nil
	}
	if err != nil {
		return domain.BookingSettings{}, fmt.Errorf("%w: settings: %w", ErrLoad, err)
	}
	return *s, nil
}

// Range is the loaded state for [From, To]
type Range struct {
	From     time.Time
	To       time.Time
	Now      time.Time
	Location *time.Location
	Settings domain.BookingSettings
	Hours    []*domain.OperatingHours

	bookings map[string][]*domain.Booking
	blocks   map[string][]*domain.BookingBlock
}

// NewRange groups bookings and blocks by civil date
func NewRange(
	from, to, now time.Time,
	location *time.Location,
	settings domain.BookingSettings,
	hours []*domain.OperatingHours,
	bookings []*domain.Booking,
	blocks []*domain.BookingBlock,
) *Range {
	r := &Range{
		From:     from,
		To:       to,
		Now:      now,
		Location: location,
		Settings: settings,
		Hours:    hours,
		bookings: make(map[string][]*domain.Booking),
		blocks:   make(map[string][]*domain.BookingBlock),
	}
	for _, b := range bookings {
		key := b.BookingDate.Format(domain.DateFormat)
		r.bookings[key] = append(r.bookings[key], b)
	}
	for _, b := range blocks {
		key := b.Date.Format(domain.DateFormat)
		r.blocks[key] = append(r.blocks[key], b)
	}
	return r
}

// Input builds the calculator input for one date of the range
func (r *Range) Input(date time.Time, durationMinutes int) availability.Input {
	key := date.Format(domain.DateFormat)
	return availability.Input{
		Date:            domain.DateIn(date, r.Location),
		DurationMinutes: durationMinutes,
		Now:             r.Now,
		Location:        r.Location,
		Settings:        r.Settings,
		Hours:           r.Hours,
		Bookings:        r.bookings[key],
		Blocks:          r.blocks[key],
	}
}

// Load reads everything needed for one date. excludeID drops a booking from
// occupancy (reschedule must not collide with itself).
func (l *Loader) Load(ctx context.Context, date time.Time, excludeID *int64) (*Range, error) {
	return l.LoadRange(ctx, date, date, excludeID)
}

// LoadRange reads everything needed for the dates in [from, to]
func (l *Loader) LoadRange(ctx context.Context, from, to time.Time, excludeID *int64) (*Range, error) {
	from = domain.DateIn(from, l.location)
	to = domain.DateIn(to, l.location)

	settings, err := l.Settings(ctx)
	if err != nil {
		return nil, err
	}

	hours, err := l.settingsRepo.ListHours(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: hours: %w", ErrLoad, err)
	}

	bookings, err := l.bookingRepo.List(ctx, domain.BookingsFilter{
		DateFrom:  &from,
		DateTo:    &to,
		ExcludeID: excludeID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: bookings: %w", ErrLoad, err)
	}

	blocks, err := l.settingsRepo.ListBlocksBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: blocks: %w", ErrLoad, err)
	}

	return NewRange(from, to, l.Now(), l.location, settings, hours, bookings, blocks), nil
}
