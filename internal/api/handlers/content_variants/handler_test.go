package content_variants

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	h := NewHandler("MASSGOO", nopLogger{})
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"seedText":"신형 드라이버 입고","channel":"LMS"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data []VariantResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data, 6)
	for i, v := range env.Data {
		assert.Contains(t, v.Text, "[MASSGOO]")
		if i > 0 {
			assert.LessOrEqual(t, v.Score.Total, env.Data[i-1].Score.Total)
		}
	}
}

func TestHandle_Rejections(t *testing.T) {
	h := NewHandler("MASSGOO", nopLogger{})
	for _, body := range []string{
		`{"seedText":"","channel":"sms"}`,
		`{"seedText":"x","channel":"fax"}`,
		`not json`,
	} {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}
