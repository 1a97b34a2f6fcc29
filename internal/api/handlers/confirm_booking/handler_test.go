package confirm_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whalechillz/mas-win-sub025/internal/service/bookings"
	"github.com/whalechillz/mas-win-sub025/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	gotID int64
	err   error
}

func (f *fakeService) Confirm(_ context.Context, id int64) (*models.BookingResponse, error) {
	f.gotID = id
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: "confirmed"}, nil
}

func serve(svc *fakeService, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/bookings/"+id+"/confirm", nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandle_Confirmed(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "3")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), svc.gotID)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)
}

func TestHandle_InvalidID(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "-1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.gotID)
}

func TestHandle_ServiceErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{bookings.ErrBookingNotFound, http.StatusNotFound},
		{bookings.ErrCannotConfirm, http.StatusConflict},
		{bookings.ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := serve(&fakeService{err: fmt.Errorf("%w: detail", tc.err)}, "3")
			assert.Equal(t, tc.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}
