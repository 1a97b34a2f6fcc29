package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	createBooking "github.com/whalechillz/mas-win-sub025/internal/usecase/create_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *createBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*domain.Booking, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Booking{
		ID:              10,
		CustomerName:    req.CustomerName,
		CustomerPhone:   "01012345678",
		BookingDate:     req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: 60,
		Status:          domain.StatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}, nil
}

const validBody = `{"customerName":"홍길동","customerPhone":"010-1234-5678","bookingDate":"2025-11-26","startTime":"10:00"}`

func serve(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	h := NewHandler(uc, nopLogger{})
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	var env struct {
		Success bool `json:"success"`
		Data    struct {
			ID        int64  `json:"id"`
			StartTime string `json:"startTime"`
			EndTime   string `json:"endTime"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, int64(10), env.Data.ID)
	assert.Equal(t, "11:00", env.Data.EndTime)
	assert.Equal(t, "010-1234-5678", uc.got.CustomerPhone)
}

func TestHandle_BadRequests(t *testing.T) {
	cases := map[string]string{
		"not json":     `{`,
		"unknown":      `{"foo":1}`,
		"bad date":     `{"customerName":"a","customerPhone":"01012345678","bookingDate":"26-11-2025","startTime":"10:00"}`,
		"bad time":     `{"customerName":"a","customerPhone":"01012345678","bookingDate":"2025-11-26","startTime":"25:99"}`,
		"missing time": `{"customerName":"a","customerPhone":"01012345678","bookingDate":"2025-11-26"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(uc, body)
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
		{createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{createBooking.ErrInvalidInput, http.StatusBadRequest},
		{createBooking.ErrDateNotBookable, http.StatusBadRequest},
		{createBooking.ErrInvalidTimeSlot, http.StatusBadRequest},
		{createBooking.ErrTooLateToBook, http.StatusBadRequest},
		{createBooking.ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := serve(&fakeUseCase{err: fmt.Errorf("%w: detail", tc.err)}, validBody)
			assert.Equal(t, tc.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}
