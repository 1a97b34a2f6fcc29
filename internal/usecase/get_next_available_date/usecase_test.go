package get_next_available_date

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/internal/service/schedule"
	"github.com/whalechillz/mas-win-sub025/pkg/ptr"
	"github.com/whalechillz/mas-win-sub025/pkg/types"
)

var seoul = time.FixedZone("KST", 9*60*60)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeLoader struct {
	settings domain.BookingSettings
	hours    []*domain.OperatingHours
	blocks   []*domain.BookingBlock
	from, to time.Time
}

// Thursday 2025-11-20 08:00
var now = time.Date(2025, 11, 20, 8, 0, 0, 0, seoul)

func (f *fakeLoader) Settings(context.Context) (domain.BookingSettings, error) {
	return f.settings, nil
}

func (f *fakeLoader) Today() time.Time { return domain.DateIn(now, seoul) }

func (f *fakeLoader) LoadRange(_ context.Context, from, to time.Time, _ *int64) (*schedule.Range, error) {
	f.from, f.to = from, to
	return schedule.NewRange(from, to, now, seoul, f.settings, f.hours, nil, f.blocks), nil
}

func TestExecute_SkipsClosedAndBlockedDays(t *testing.T) {
	s := domain.DefaultBookingSettings()
	s.MinAdvanceHours = 0
	s.DisableSameDayBooking = true
	loader := &fakeLoader{
		settings: s,
		hours: []*domain.OperatingHours{
			{DayOfWeek: time.Friday, StartTime: "10:00", EndTime: "11:00", IsAvailable: true},
			{DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "18:00", IsAvailable: true},
		},
		// Friday fully blocked
		blocks: []*domain.BookingBlock{{Date: time.Date(2025, 11, 21, 0, 0, 0, 0, time.UTC), StartTime: "10:00", DurationMinutes: 60}},
	}
	uc := NewUseCase(loader, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{DurationMinutes: ptr.Ptr(60)})
	require.NoError(t, err)
	assert.Equal(t, "2025-11-24", resp.Date.Format(domain.DateFormat))
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, 14, int(loader.to.Sub(loader.from).Hours()/24))
}

func TestExecute_NoDate(t *testing.T) {
	s := domain.DefaultBookingSettings()
	s.MaxAdvanceDays = 0
	loader := &fakeLoader{settings: s}
	uc := NewUseCase(loader, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrNoAvailableDate)
	assert.Equal(t, domain.DefaultNextAvailableHorizon, int(loader.to.Sub(loader.from).Hours()/24))
}

func TestExecute_InvalidDuration(t *testing.T) {
	uc := NewUseCase(&fakeLoader{settings: domain.DefaultBookingSettings()}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{DurationMinutes: ptr.Ptr(-5)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
