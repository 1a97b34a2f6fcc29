package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	bookingRepo "github.com/whalechillz/mas-win-sub025/internal/infra/storage/booking"
	"github.com/whalechillz/mas-win-sub025/internal/service/bookings/models"
	"github.com/whalechillz/mas-win-sub025/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	bookings map[int64]*domain.Booking
	filter   domain.BookingsFilter
	listErr  error
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	f.bookings[id].Status = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, reason *string) error {
	f.bookings[id].Status = domain.StatusCancelled
	f.bookings[id].CancellationReason = reason
	return nil
}

type directTx struct{}

func (directTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fakeNotifier struct{ confirmed, cancelled int }

func (f *fakeNotifier) BookingConfirmed(context.Context, *domain.Booking) { f.confirmed++ }
func (f *fakeNotifier) BookingCancelled(context.Context, *domain.Booking) { f.cancelled++ }

type fakePublisher struct{ keys []string }

func (f *fakePublisher) Publish(_ context.Context, key string, _ any) error {
	f.keys = append(f.keys, key)
	return nil
}

type nopMetrics struct{}

func (nopMetrics) ObserveBooking(string, string) {}

func newService() (*Service, *fakeRepo, *fakeNotifier, *fakePublisher) {
	day := time.Date(2025, 11, 26, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepo{bookings: map[int64]*domain.Booking{
		1: {ID: 1, CustomerName: "A", BookingDate: day, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusPending},
		2: {ID: 2, CustomerName: "B", BookingDate: day, StartTime: "12:00", DurationMinutes: 60, Status: domain.StatusCancelled},
	}}
	n := &fakeNotifier{}
	p := &fakePublisher{}
	return NewService(repo, directTx{}, n, p, nopMetrics{}, nopLogger{}), repo, n, p
}

func TestService_GetByID(t *testing.T) {
	s, _, _, _ := newService()

	got, err := s.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2025-11-26", got.BookingDate)
	assert.Equal(t, "11:00", got.EndTime)

	_, err = s.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_Confirm(t *testing.T) {
	s, repo, n, p := newService()

	got, err := s.Confirm(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
	assert.Equal(t, 1, n.confirmed)
	assert.Equal(t, []string{"booking.confirmed"}, p.keys)

	_, err = s.Confirm(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCannotConfirm)
}

func TestService_Cancel(t *testing.T) {
	s, repo, n, _ := newService()

	got, err := s.Cancel(context.Background(), 1, ptr.Ptr("  schedule changed "))
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	require.NotNil(t, got.CancelledAt)
	assert.Equal(t, "schedule changed", *repo.bookings[1].CancellationReason)
	assert.Equal(t, 1, n.cancelled)

	_, err = s.Cancel(context.Background(), 2, nil)
	assert.ErrorIs(t, err, ErrCannotCancel)

	_, err = s.Cancel(context.Background(), 404, nil)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_List(t *testing.T) {
	s, repo, _, _ := newService()

	resp, err := s.List(context.Background(), &models.ListBookingsRequest{
		Status: ptr.Ptr("cancelled"),
		Phone:  ptr.Ptr("010-1234-5678"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	assert.True(t, repo.filter.IncludeCancelled)
	assert.Equal(t, "01012345678", *repo.filter.Phone)

	_, err = s.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("no_show")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	from := time.Date(2025, 11, 26, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)
	_, err = s.List(context.Background(), &models.ListBookingsRequest{DateFrom: &from, DateTo: &to})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.listErr = errors.New("db down")
	_, err = s.List(context.Background(), &models.ListBookingsRequest{})
	assert.ErrorIs(t, err, ErrInternal)
}
