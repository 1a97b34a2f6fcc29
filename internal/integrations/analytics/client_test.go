package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestRunReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/properties/123:runReport", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		var req apiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "2025-11-01", req.DateRanges[0].StartDate)
		assert.Equal(t, []named{{Name: "date"}}, req.Dimensions)

		_, _ = w.Write([]byte(`{
			"dimensionHeaders":[{"name":"date"}],
			"metricHeaders":[{"name":"sessions"}],
			"rows":[{"dimensionValues":[{"value":"20251101"}],"metricValues":[{"value":"42"}]}],
			"rowCount":1
		}`))
	}))
	defer srv.Close()

	httpClient := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "token"}))
	c := NewClientWithHTTP(srv.URL, "123", httpClient)

	report, err := c.RunReport(context.Background(), ReportRequest{
		StartDate:  "2025-11-01",
		EndDate:    "2025-11-07",
		Dimensions: []string{"date"},
		Metrics:    []string{"sessions"},
	})
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "42", report.Rows[0].Metrics["sessions"])
	assert.Equal(t, "20251101", report.Rows[0].Dimensions["date"])
}

func TestRunReport_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClientWithHTTP(srv.URL, "123", srv.Client())
	_, err := c.RunReport(context.Background(), ReportRequest{Metrics: []string{"sessions"}})
	assert.ErrorIs(t, err, ErrRejected)
}
