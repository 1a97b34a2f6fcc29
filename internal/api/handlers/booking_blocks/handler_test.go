package booking_blocks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whalechillz/mas-win-sub025/internal/service/settings"
	"github.com/whalechillz/mas-win-sub025/internal/service/settings/models"
	"github.com/whalechillz/mas-win-sub025/pkg/types"
)

var seoul = time.FixedZone("KST", 9*60*60)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	from, to  time.Time
	created   *models.CreateBlockRequest
	deletedID int64
	err       error
}

func (f *fakeService) ListBlocks(_ context.Context, from, to time.Time) ([]*models.BlockResponse, error) {
	f.from, f.to = from, to
	return []*models.BlockResponse{}, f.err
}

func (f *fakeService) CreateBlock(_ context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	f.created = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BlockResponse{ID: 1, Date: "2025-11-26", StartTime: string(req.StartTime), DurationMinutes: req.DurationMinutes}, nil
}

func (f *fakeService) DeleteBlock(_ context.Context, id int64) error {
	f.deletedID = id
	return f.err
}

func TestList_ExplicitRange(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, seoul, nopLogger{}).List(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/admin/booking-blocks?from=2025-11-01&to=2025-11-30", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2025, 11, 1, 0, 0, 0, 0, seoul), svc.from)
	assert.Equal(t, time.Date(2025, 11, 30, 0, 0, 0, 0, seoul), svc.to)
}

func TestList_DefaultRange(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()

	NewHandler(svc, seoul, nopLogger{}).List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/booking-blocks", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, svc.from.AddDate(0, 0, defaultRangeDays), svc.to)
}

func TestList_InvalidDate(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{}, seoul, nopLogger{}).List(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/admin/booking-blocks?from=11/01/2025", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreate(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()
	body := `{"date":"2025-11-26","startTime":"13:00","durationMinutes":60,"isVirtual":false,"reason":"점검"}`

	NewHandler(svc, seoul, nopLogger{}).Create(rec,
		httptest.NewRequest(http.MethodPost, "/api/v1/admin/booking-blocks", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, types.TimeString("13:00"), svc.created.StartTime)
	assert.Equal(t, time.Date(2025, 11, 26, 0, 0, 0, 0, seoul), svc.created.Date)
}

func TestCreate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{"malformed json", `{"date":`, nil},
		{"bad start", `{"date":"2025-11-26","startTime":"1pm","durationMinutes":60}`, nil},
		{"rejected by service", `{"date":"2025-11-26","startTime":"13:00","durationMinutes":0}`, settings.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&fakeService{err: tt.err}, seoul, nopLogger{}).Create(rec,
				httptest.NewRequest(http.MethodPost, "/api/v1/admin/booking-blocks", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestDelete(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()
	req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/booking-blocks/5", nil),
		map[string]string{"blockId": "5"})

	NewHandler(svc, seoul, nopLogger{}).Delete(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.deletedID)

	rec = httptest.NewRecorder()
	NewHandler(&fakeService{err: settings.ErrBlockNotFound}, seoul, nopLogger{}).Delete(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
