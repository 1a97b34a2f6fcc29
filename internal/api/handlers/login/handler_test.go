package login

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

	"github.com/whalechillz/mas-win-sub025/internal/service/auth"
	"github.com/whalechillz/mas-win-sub025/internal/service/auth/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.LoginRequest
	err error
}

func (f *fakeService) Login(_ context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.LoginResponse{
		Token:     "jwt-token",
		ExpiresAt: time.Date(2025, 11, 26, 12, 0, 0, 0, time.UTC),
		User:      models.UserInfo{ID: 1, Email: req.Email, Name: "관리자", Role: "admin"},
	}, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body)))
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"email":"admin@masgolf.co.kr","password":"secret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Success bool                 `json:"success"`
		Data    models.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "jwt-token", env.Data.Token)
	assert.Equal(t, "admin@masgolf.co.kr", env.Data.User.Email)
	assert.Equal(t, "secret", svc.got.Password)
}

func TestHandle_InvalidBody(t *testing.T) {
	for name, body := range map[string]string{
		"not json":      `{`,
		"unknown field": `{"email":"a@b.c","password":"x","remember":true}`,
	} {
		t.Run(name, func(t *testing.T) {
			svc := &fakeService{}
			rec := serve(svc, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, svc.got)
		})
	}
}

func TestHandle_ServiceErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{auth.ErrInvalidInput, http.StatusBadRequest},
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{auth.ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := serve(&fakeService{err: fmt.Errorf("%w: detail", tc.err)}, `{"email":"a@b.c","password":"x"}`)
			assert.Equal(t, tc.want, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
}
