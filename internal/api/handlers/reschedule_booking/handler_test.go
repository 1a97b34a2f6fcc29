package reschedule_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	rescheduleBooking "github.com/whalechillz/mas-win-sub025/internal/usecase/reschedule_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *rescheduleBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *rescheduleBooking.Request) (*domain.Booking, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	duration := 60
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}
	return &domain.Booking{
		ID:              req.BookingID,
		CustomerName:    "홍길동",
		CustomerPhone:   "01012345678",
		BookingDate:     req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: duration,
		Status:          domain.StatusConfirmed,
	}, nil
}

const validBody = `{"bookingDate":"2025-11-27","startTime":"14:00","durationMinutes":90}`

func serve(uc *fakeUseCase, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/bookings/"+id, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_Rescheduled(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "12", validBody)

	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data struct {
			ID        int64  `json:"id"`
			StartTime string `json:"startTime"`
			EndTime   string `json:"endTime"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, int64(12), env.Data.ID)
	assert.Equal(t, "14:00", env.Data.StartTime)
	assert.Equal(t, "15:30", env.Data.EndTime)

	assert.Equal(t, int64(12), uc.got.BookingID)
	assert.Equal(t, time.Date(2025, 11, 27, 0, 0, 0, 0, time.UTC), uc.got.Date)
	require.NotNil(t, uc.got.DurationMinutes)
	assert.Equal(t, 90, *uc.got.DurationMinutes)
}

func TestHandle_KeepsDurationWhenOmitted(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "12", `{"bookingDate":"2025-11-27","startTime":"14:00"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.got.DurationMinutes)
}

func TestHandle_BadRequests(t *testing.T) {
	cases := []struct {
		name string
		id   string
		body string
	}{
		{"bad id", "abc", validBody},
		{"not json", "12", `{`},
		{"unknown field", "12", `{"foo":1}`},
		{"bad date", "12", `{"bookingDate":"27.11.2025","startTime":"14:00"}`},
		{"bad time", "12", `{"bookingDate":"2025-11-27","startTime":"2pm"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(uc, tc.id, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{rescheduleBooking.ErrBookingNotFound, http.StatusNotFound},
		{rescheduleBooking.ErrSlotNotAvailable, http.StatusConflict},
		{rescheduleBooking.ErrCannotReschedule, http.StatusConflict},
		{rescheduleBooking.ErrInvalidInput, http.StatusBadRequest},
		{rescheduleBooking.ErrDateNotBookable, http.StatusBadRequest},
		{rescheduleBooking.ErrInvalidTimeSlot, http.StatusBadRequest},
		{rescheduleBooking.ErrTooLateToBook, http.StatusBadRequest},
		{rescheduleBooking.ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := serve(&fakeUseCase{err: fmt.Errorf("%w: detail", tc.err)}, "12", validBody)
			assert.Equal(t, tc.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}

func TestHandle_NonPositiveDuration(t *testing.T) {
	uc := &fakeUseCase{err: fmt.Errorf("%w: duration must be positive", rescheduleBooking.ErrInvalidInput)}
	rec := serve(uc, "12", `{"bookingDate":"2025-11-27","startTime":"14:00","durationMinutes":0}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, uc.got.DurationMinutes)
	assert.Equal(t, 0, *uc.got.DurationMinutes)
	assert.Contains(t, rec.Body.String(), "duration must be positive")
}
