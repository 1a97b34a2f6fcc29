package objectstorage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/whalechillz/mas-win-sub025/pkg/tracing"
)

// MaxObjectSize bounds downloads and fetched images
const MaxObjectSize = 10 << 20

// Object is a listed storage entry
type Object struct {
	Name      string    `json:"name"`
	ID        *string   `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"created_at"`
	Metadata  struct {
		Size        int64  `json:"size"`
		ContentType string `json:"mimetype"`
	} `json:"metadata"`
}

// IsFolder reports a prefix placeholder entry
func (o Object) IsFolder() bool {
	return o.ID == nil
}

// Client is a Supabase-style storage REST client bound to one bucket
type Client struct {
	baseURL    string
	bucket     string
	serviceKey string
	httpClient *http.Client
}

func NewClient(baseURL, bucket, serviceKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		bucket:     bucket,
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: tracing.WrapTransport(nil),
		},
	}
}

// List returns entries directly under prefix
func (c *Client) List(ctx context.Context, prefix string, limit, offset int) ([]Object, error) {
	if limit <= 0 {
		limit = 100
	}
	body := map[string]interface{}{
		"prefix": strings.Trim(prefix, "/"),
		"limit":  limit,
		"offset": offset,
		"sortBy": map[string]string{"column": "created_at", "order": "desc"},
	}

	resp, err := c.do(ctx, http.MethodPost, "/storage/v1/object/list/"+c.bucket, "application/json", jsonBody(body), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var objects []Object
	if err := json.NewDecoder(resp.Body).Decode(&objects); err != nil {
		return nil, fmt.Errorf("%w: List: %v", ErrInvalidResponse, err)
	}
	return objects, nil
}

// Upload stores body at objectPath, overwriting an existing object
func (c *Client) Upload(ctx context.Context, objectPath, contentType string, body io.Reader) error {
	p, err := cleanPath(objectPath)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodPost, "/storage/v1/object/"+c.bucket+"/"+p, contentType, body,
		map[string]string{"x-upsert": "true"})
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Download returns the object bytes
func (c *Client) Download(ctx context.Context, objectPath string) ([]byte, string, error) {
	p, err := cleanPath(objectPath)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.do(ctx, http.MethodGet, "/storage/v1/object/"+c.bucket+"/"+p, "", nil, nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := readLimited(resp.Body)
	return data, resp.Header.Get("Content-Type"), err
}

// Move renames an object inside the bucket
func (c *Client) Move(ctx context.Context, from, to string) error {
	src, err := cleanPath(from)
	if err != nil {
		return err
	}
	dst, err := cleanPath(to)
	if err != nil {
		return err
	}

	body := map[string]string{"bucketId": c.bucket, "sourceKey": src, "destinationKey": dst}
	resp, err := c.do(ctx, http.MethodPost, "/storage/v1/object/move", "application/json", jsonBody(body), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Remove deletes the given objects
func (c *Client) Remove(ctx context.Context, paths []string) error {
	cleaned := make([]string, 0, len(paths))
	for _, p := range paths {
		cp, err := cleanPath(p)
		if err != nil {
			return err
		}
		cleaned = append(cleaned, cp)
	}

	resp, err := c.do(ctx, http.MethodDelete, "/storage/v1/object/"+c.bucket, "application/json",
		jsonBody(map[string][]string{"prefixes": cleaned}), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// PublicURL returns the public address of an object
func (c *Client) PublicURL(objectPath string) string {
	p, _ := cleanPath(objectPath)
	return c.baseURL + "/storage/v1/object/public/" + c.bucket + "/" + p
}

// Fetch downloads an arbitrary http(s) URL, used to re-host MMS images
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, "", fmt.Errorf("%w: %q is not an http(s) URL", ErrInvalidPath, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: Fetch: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: Fetch %s: %v", ErrUnavailable, u.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: Fetch %s: status %d", ErrRejected, u.Host, resp.StatusCode)
	}

	data, err := readLimited(resp.Body)
	return data, resp.Header.Get("Content-Type"), err
}

func (c *Client) do(ctx context.Context, method, p, contentType string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+p, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, p, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp, nil
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		resp.Body.Close()
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: %s %s: status %d: %s", ErrUnavailable, method, p, resp.StatusCode, raw)
		}
		return nil, fmt.Errorf("%w: %s %s: status %d: %s", ErrRejected, method, p, resp.StatusCode, raw)
	}
}

func cleanPath(p string) (string, error) {
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" || p == "." {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	return p, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxObjectSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if len(data) > MaxObjectSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}
