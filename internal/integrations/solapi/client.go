package solapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/pkg/tracing"
)

const (
	maxErrorBody = 4096
	listPageSize = 100
	maxListPages = 50
)

// Logger is the subset of the service logger the client uses
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client talks to the Solapi messaging gateway
type Client struct {
	baseURL    string
	sender     string
	signer     *Signer
	httpClient *http.Client
	log        Logger
}

// NewClient creates a Solapi client; sender is the registered caller number
func NewClient(baseURL, apiKey, apiSecret, sender string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		sender:  domain.NormalizePhone(sender),
		signer:  NewSigner(apiKey, apiSecret),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: tracing.WrapTransport(nil),
		},
		log: log,
	}
}

// Configured reports whether credentials and sender are present
func (c *Client) Configured() bool {
	return c.signer.apiKey != "" && c.signer.apiSecret != "" && c.sender != ""
}

// Sender is the registered caller number in digit form
func (c *Client) Sender() string {
	return c.sender
}

// SendMany registers one batch. Every message without From gets the configured sender.
func (c *Client) SendMany(ctx context.Context, messages []Message) (*SendResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	for i := range messages {
		if messages[i].From == "" {
			messages[i].From = c.sender
		}
	}

	var resp sendManyResponse
	if err := c.do(ctx, http.MethodPost, "/messages/v4/send-many/detail", sendManyRequest{Messages: messages}, &resp); err != nil {
		return nil, err
	}

	groupID := resp.GroupID
	if resp.GroupInfo != nil {
		groupID = firstNonEmpty(resp.GroupInfo.GroupID, resp.GroupInfo.ID, groupID)
	}
	if groupID == "" {
		return nil, fmt.Errorf("%w: SendMany - response has no group id", ErrInvalidResponse)
	}

	result := &SendResult{GroupID: groupID}
	for _, f := range resp.FailedList {
		result.Rejected = append(result.Rejected, f.To)
	}

	c.log.Info("solapi: registered group %s with %d messages (%d rejected)", groupID, len(messages), len(result.Rejected))
	return result, nil
}

// Send registers a single message
func (c *Client) Send(ctx context.Context, to, text string) (string, error) {
	msgType := domain.MessageSMS
	if domain.MessageBytes(text) > domain.SMSMaxBytes {
		msgType = domain.MessageLMS
	}

	res, err := c.SendMany(ctx, []Message{{To: domain.NormalizePhone(to), Text: text, Type: string(msgType)}})
	if err != nil {
		return "", err
	}
	return res.GroupID, nil
}

// GetGroupCounts returns the authoritative delivery aggregate of one group
func (c *Client) GetGroupCounts(ctx context.Context, groupID string) (domain.DeliveryCounts, error) {
	if !c.Configured() {
		return domain.DeliveryCounts{}, ErrNotConfigured
	}

	var resp groupResponse
	if err := c.do(ctx, http.MethodGet, "/messages/v4/groups/"+url.PathEscape(groupID), nil, &resp); err != nil {
		return domain.DeliveryCounts{}, err
	}

	cnt := resp.Count
	if resp.GroupInfo != nil && resp.GroupInfo.Count != nil {
		cnt = resp.GroupInfo.Count
	}
	if cnt == nil {
		return domain.DeliveryCounts{}, fmt.Errorf("%w: GetGroupCounts - group %s has no count", ErrInvalidResponse, groupID)
	}

	return cnt.toDelivery(), nil
}

// UploadImage stores an MMS image on the gateway and returns its file id
func (c *Client) UploadImage(ctx context.Context, name string, data []byte) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	req := uploadRequest{
		File: base64.StdEncoding.EncodeToString(data),
		Type: "MMS",
		Name: name,
	}

	var resp uploadResponse
	if err := c.do(ctx, http.MethodPost, "/storage/v1/files", req, &resp); err != nil {
		return "", err
	}
	if resp.FileID == "" {
		return "", fmt.Errorf("%w: UploadImage - response has no file id", ErrInvalidResponse)
	}

	return resp.FileID, nil
}

// ListGroups returns groups that had messages created in [from, to], oldest first.
// The message list is paged until the gateway returns an empty page or no next key.
func (c *Client) ListGroups(ctx context.Context, from, to time.Time) ([]GroupSummary, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("startDate", from.UTC().Format(dateLayout))
	q.Set("endDate", to.UTC().Format(dateLayout))
	q.Set("limit", strconv.Itoa(listPageSize))

	groups := make(map[string]*GroupSummary)
	seenKeys := make(map[string]struct{})
	for page := 0; page < maxListPages; page++ {
		var resp listMessagesResponse
		if err := c.do(ctx, http.MethodGet, "/messages/v4/list?"+q.Encode(), nil, &resp); err != nil {
			return nil, err
		}

		for _, m := range resp.MessageList {
			if m.GroupID == "" {
				continue
			}
			g, ok := groups[m.GroupID]
			if !ok {
				g = &GroupSummary{GroupID: m.GroupID, CreatedAt: m.DateCreated, MessageType: m.Type}
				groups[m.GroupID] = g
			}
			if m.DateCreated.Before(g.CreatedAt) {
				g.CreatedAt = m.DateCreated
			}
			g.Recipients++
		}

		if len(resp.MessageList) == 0 || resp.NextKey == nil || *resp.NextKey == "" {
			break
		}
		if _, dup := seenKeys[*resp.NextKey]; dup {
			break
		}
		seenKeys[*resp.NextKey] = struct{}{}
		q.Set("startKey", *resp.NextKey)

		if page == maxListPages-1 {
			c.log.Warn("Solapi ListGroups: stopped after %d pages, result may be incomplete", maxListPages)
		}
	}

	out := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.signer.Header())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s %s: status %d: %s", ErrUnavailable, method, path, resp.StatusCode, string(raw))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil {
			apiErr.Code = er.ErrorCode
			apiErr.Message = er.ErrorMessage
		}
		c.log.Warn("solapi: %s %s rejected: %v", method, path, apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

func (c *count) toDelivery() domain.DeliveryCounts {
	total := pick(c.Total, c.SentTotal)
	success := pick(c.SentSuccess, c.Successful)
	fail := pick(c.SentFailed, c.Failed)

	var sending int
	if c.SentPending != nil || c.Sending != nil {
		sending = pick(c.SentPending, c.Sending)
	} else {
		sending = max(total-success-fail, 0)
	}

	return domain.DeliveryCounts{Total: total, Success: success, Fail: fail, Sending: sending}
}

// pick returns the first non-nil value
func pick(values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
