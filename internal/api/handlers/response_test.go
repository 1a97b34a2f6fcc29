package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, map[string]int{"id": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"success":true,"data":{"id":1}}`, rec.Body.String())
}

func TestRespondUpstreamError_TruncatesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondUpstreamError(rec, "gateway failed", errors.New(strings.Repeat("가", 500)))

	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "gateway failed", env.Error)
	assert.Equal(t, maxDetailsLength, len([]rune(env.Details)))
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "a", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","extra":1}`))
	assert.Error(t, DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
	assert.Error(t, DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	assert.Error(t, DecodeJSON(r, &v))
}

func TestPathInt64(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "12"})
	id, err := PathInt64(r, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "-1"})
	_, err = PathInt64(r, "id")
	assert.Error(t, err)
}

func TestQueryHelpers(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?n=5&bad=x&flag=true", nil)

	n, err := QueryInt(r, "n")
	require.NoError(t, err)
	assert.Equal(t, 5, *n)

	missing, err := QueryInt(r, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = QueryInt(r, "bad")
	assert.Error(t, err)

	assert.True(t, QueryBool(r, "flag"))
	assert.False(t, QueryBool(r, "missing"))
}
