package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/whalechillz/mas-win-sub025/pkg/tracing"
)

const scope = "https://www.googleapis.com/auth/analytics.readonly"

var (
	ErrDisabled        = errors.New("analytics: disabled")
	ErrCredentials     = errors.New("analytics: invalid credentials")
	ErrUnavailable     = errors.New("analytics: api unavailable")
	ErrRejected        = errors.New("analytics: request rejected")
	ErrInvalidResponse = errors.New("analytics: invalid response")
)

// ReportRequest selects a GA4 report
type ReportRequest struct {
	StartDate  string
	EndDate    string
	Dimensions []string
	Metrics    []string
	Limit      int
}

// Row is one report row keyed by dimension/metric name
type Row struct {
	Dimensions map[string]string `json:"dimensions"`
	Metrics    map[string]string `json:"metrics"`
}

// Report is the flattened runReport result
type Report struct {
	Dimensions []string `json:"dimensions"`
	Metrics    []string `json:"metrics"`
	Rows       []Row    `json:"rows"`
	RowCount   int      `json:"rowCount"`
}

// Client queries the GA4 Data API with a service account
type Client struct {
	baseURL    string
	propertyID string
	httpClient *http.Client
}

// NewClient loads service account credentials and builds an authorized client
func NewClient(ctx context.Context, baseURL, propertyID, credentialsFile string, timeout time.Duration) (*Client, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrCredentials, credentialsFile, err)
	}

	conf, err := google.JWTConfigFromJSON(data, scope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCredentials, err)
	}

	base := &http.Client{Timeout: timeout, Transport: tracing.WrapTransport(nil)}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	httpClient := oauth2.NewClient(ctx, conf.TokenSource(ctx))
	httpClient.Timeout = timeout

	return NewClientWithHTTP(baseURL, propertyID, httpClient), nil
}

// NewClientWithHTTP uses an already authorized http client
func NewClientWithHTTP(baseURL, propertyID string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		propertyID: propertyID,
		httpClient: httpClient,
	}
}

type apiRequest struct {
	DateRanges []dateRange `json:"dateRanges"`
	Dimensions []named     `json:"dimensions,omitempty"`
	Metrics    []named     `json:"metrics"`
	Limit      int         `json:"limit,omitempty"`
}

type dateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type named struct {
	Name string `json:"name"`
}

type apiResponse struct {
	DimensionHeaders []named `json:"dimensionHeaders"`
	MetricHeaders    []named `json:"metricHeaders"`
	Rows             []struct {
		DimensionValues []struct {
			Value string `json:"value"`
		} `json:"dimensionValues"`
		MetricValues []struct {
			Value string `json:"value"`
		} `json:"metricValues"`
	} `json:"rows"`
	RowCount int `json:"rowCount"`
}

// RunReport executes properties/{id}:runReport
func (c *Client) RunReport(ctx context.Context, r ReportRequest) (*Report, error) {
	req := apiRequest{
		DateRanges: []dateRange{{StartDate: r.StartDate, EndDate: r.EndDate}},
		Limit:      r.Limit,
	}
	for _, d := range r.Dimensions {
		req.Dimensions = append(req.Dimensions, named{Name: d})
	}
	for _, m := range r.Metrics {
		req.Metrics = append(req.Metrics, named{Name: m})
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrRejected, err)
	}

	url := fmt.Sprintf("%s/v1beta/properties/%s:runReport", c.baseURL, c.propertyID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, raw)
		}
		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, raw)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return flatten(body), nil
}

func flatten(body apiResponse) *Report {
	report := &Report{RowCount: body.RowCount, Rows: make([]Row, 0, len(body.Rows))}
	for _, h := range body.DimensionHeaders {
		report.Dimensions = append(report.Dimensions, h.Name)
	}
	for _, h := range body.MetricHeaders {
		report.Metrics = append(report.Metrics, h.Name)
	}

	for _, r := range body.Rows {
		row := Row{
			Dimensions: make(map[string]string, len(r.DimensionValues)),
			Metrics:    make(map[string]string, len(r.MetricValues)),
		}
		for i, v := range r.DimensionValues {
			if i < len(report.Dimensions) {
				row.Dimensions[report.Dimensions[i]] = v.Value
			}
		}
		for i, v := range r.MetricValues {
			if i < len(report.Metrics) {
				row.Metrics[report.Metrics[i]] = v.Value
			}
		}
		report.Rows = append(report.Rows, row)
	}

	return report
}

// Disabled stands in for the client when analytics is switched off
type Disabled struct{}

func (Disabled) RunReport(context.Context, ReportRequest) (*Report, error) {
	return nil, ErrDisabled
}
