package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	bookingRepo "github.com/whalechillz/mas-win-sub025/internal/infra/storage/booking"
	"github.com/whalechillz/mas-win-sub025/internal/service/schedule"
	"github.com/whalechillz/mas-win-sub025/pkg/ptr"
	"github.com/whalechillz/mas-win-sub025/pkg/types"
)

var (
	seoul      = time.FixedZone("KST", 9*60*60)
	bookingDay = time.Date(2025, 11, 26, 0, 0, 0, 0, seoul)
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	bookings map[int64]*domain.Booking
	updated  bool
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) UpdateSchedule(_ context.Context, id int64, date time.Time, start types.TimeString, duration int) error {
	f.updated = true
	b := f.bookings[id]
	b.BookingDate, b.StartTime, b.DurationMinutes = date, start, duration
	return nil
}

// fakeLoader honours excludeID the way the real loader does
type fakeLoader struct {
	repo     *fakeRepo
	excluded *int64
}

func (f *fakeLoader) Load(_ context.Context, date time.Time, excludeID *int64) (*schedule.Range, error) {
	f.excluded = excludeID
	var bookings []*domain.Booking
	for id, b := range f.repo.bookings {
		if excludeID != nil && id == *excludeID {
			continue
		}
		bookings = append(bookings, b)
	}
	hours := []*domain.OperatingHours{{DayOfWeek: time.Wednesday, StartTime: "09:00", EndTime: "18:00", IsAvailable: true}}
	now := time.Date(2025, 11, 20, 9, 0, 0, 0, seoul)
	return schedule.NewRange(date, date, now, seoul, domain.DefaultBookingSettings(), hours, bookings, nil), nil
}

func (f *fakeLoader) Location() *time.Location { return seoul }

type directTx struct{}

func (directTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct{ calls int }

func (f *fakeNotifier) BookingRescheduled(context.Context, *domain.Booking) { f.calls++ }

type fakePublisher struct{ keys []string }

func (f *fakePublisher) Publish(_ context.Context, key string, _ any) error {
	f.keys = append(f.keys, key)
	return nil
}

type nopMetrics struct{}

func (nopMetrics) ObserveBooking(string, string) {}

func setup() (*UseCase, *fakeRepo, *fakeLoader, *fakeNotifier) {
	repo := &fakeRepo{bookings: map[int64]*domain.Booking{
		1: {ID: 1, BookingDate: bookingDay, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		2: {ID: 2, BookingDate: bookingDay, StartTime: "13:00", DurationMinutes: 60, Status: domain.StatusPending},
		3: {ID: 3, BookingDate: bookingDay, StartTime: "15:00", DurationMinutes: 60, Status: domain.StatusCancelled},
	}}
	loader := &fakeLoader{repo: repo}
	notifier := &fakeNotifier{}
	uc := NewUseCase(repo, loader, directTx{}, notifier, &fakePublisher{}, nopMetrics{}, nopLogger{})
	return uc, repo, loader, notifier
}

func TestExecute_ShiftWithinOwnInterval(t *testing.T) {
	uc, repo, loader, notifier := setup()

	got, err := uc.Execute(context.Background(), &Request{BookingID: 1, Date: bookingDay, StartTime: "10:30"})
	require.NoError(t, err)

	require.NotNil(t, loader.excluded)
	assert.Equal(t, int64(1), *loader.excluded)
	assert.Equal(t, types.TimeString("10:30"), got.StartTime)
	assert.Equal(t, 60, got.DurationMinutes)
	assert.True(t, repo.updated)
	assert.Equal(t, 1, notifier.calls)
}

func TestExecute_OverlapWithOtherBooking(t *testing.T) {
	uc, repo, _, notifier := setup()

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, Date: bookingDay, StartTime: "12:30"})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.False(t, repo.updated)
	assert.Zero(t, notifier.calls)
}

func TestExecute_ChangesDuration(t *testing.T) {
	uc, _, _, _ := setup()

	got, err := uc.Execute(context.Background(), &Request{BookingID: 1, Date: bookingDay, StartTime: "10:00", DurationMinutes: ptr.Ptr(120)})
	require.NoError(t, err)
	assert.Equal(t, 120, got.DurationMinutes)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 1, Date: bookingDay, StartTime: "11:00", DurationMinutes: ptr.Ptr(150)})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_Errors(t *testing.T) {
	uc, _, _, _ := setup()

	_, err := uc.Execute(context.Background(), &Request{BookingID: 99, Date: bookingDay, StartTime: "10:00"})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 3, Date: bookingDay, StartTime: "16:00"})
	assert.ErrorIs(t, err, ErrCannotReschedule)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 1, Date: bookingDay, StartTime: "17:30"})
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 0, Date: bookingDay, StartTime: "10:00"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
