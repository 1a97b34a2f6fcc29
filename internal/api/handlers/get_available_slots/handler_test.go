package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	getAvailableSlots "github.com/whalechillz/mas-win-sub025/internal/usecase/get_available_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &getAvailableSlots.Response{
		Date:            req.Date,
		DurationMinutes: 60,
		Slots: []domain.AvailableSlot{
			{StartTime: "10:00", EndTime: "11:00", DurationMinutes: 60},
			{StartTime: "10:30", EndTime: "11:30", DurationMinutes: 60},
		},
	}, nil
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	h := NewHandler(uc, nopLogger{})
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/api/v1/bookings/available?date=2025-11-26&duration=60")

	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Success bool                   `json:"success"`
		Data    AvailableSlotsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "2025-11-26", env.Data.Date)
	require.Len(t, env.Data.Slots, 2)
	assert.Equal(t, "10:30", env.Data.Slots[1].StartTime)
	assert.Equal(t, "11:30", env.Data.Slots[1].EndTime)

	require.NotNil(t, uc.got.DurationMinutes)
	assert.Equal(t, 60, *uc.got.DurationMinutes)
	assert.Equal(t, time.Date(2025, 11, 26, 0, 0, 0, 0, time.UTC), uc.got.Date)
}

func TestHandle_DefaultDuration(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/api/v1/bookings/available?date=2025-11-26")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.got.DurationMinutes)
}

func TestHandle_BadRequests(t *testing.T) {
	cases := map[string]string{
		"missing date":       "/api/v1/bookings/available",
		"bad date":           "/api/v1/bookings/available?date=26-11-2025",
		"duration not a num": "/api/v1/bookings/available?date=2025-11-26&duration=abc",
	}
	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(uc, target)
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
		{getAvailableSlots.ErrInvalidInput, http.StatusBadRequest},
		{getAvailableSlots.ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := serve(&fakeUseCase{err: fmt.Errorf("%w: detail", tc.err)}, "/api/v1/bookings/available?date=2025-11-26&duration=0")
			assert.Equal(t, tc.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}
