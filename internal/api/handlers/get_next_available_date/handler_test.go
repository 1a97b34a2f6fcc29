package get_next_available_date

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
	getNextAvailableDate "github.com/whalechillz/mas-win-sub025/internal/usecase/get_next_available_date"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *getNextAvailableDate.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getNextAvailableDate.Request) (*getNextAvailableDate.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &getNextAvailableDate.Response{
		Date:            time.Date(2025, 11, 27, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
		Slots:           []domain.AvailableSlot{{StartTime: "09:00", EndTime: "10:30", DurationMinutes: 90}},
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
	rec := serve(uc, "/api/v1/bookings/next-available?duration=90")

	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data NextAvailableResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "2025-11-27", env.Data.Date)
	assert.Equal(t, 90, env.Data.DurationMinutes)
	require.Len(t, env.Data.Slots, 1)
	assert.Equal(t, "10:30", env.Data.Slots[0].EndTime)
	require.NotNil(t, uc.got.DurationMinutes)
	assert.Equal(t, 90, *uc.got.DurationMinutes)
}

func TestHandle_BadDurationParam(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/api/v1/bookings/next-available?duration=1h")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_UseCaseErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{getNextAvailableDate.ErrInvalidInput, http.StatusBadRequest},
		{getNextAvailableDate.ErrNoAvailableDate, http.StatusNotFound},
		{getNextAvailableDate.ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := serve(&fakeUseCase{err: fmt.Errorf("%w: detail", tc.err)}, "/api/v1/bookings/next-available?duration=-5")
			assert.Equal(t, tc.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}
