package twilio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

var (
	ErrNotConfigured = errors.New("twilio client: not configured")
	ErrSend          = errors.New("twilio client: send failed")
)

// messageCreator is the part of the Twilio REST API the client uses
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// Client sends SMS through Twilio
type Client struct {
	api  messageCreator
	from string
}

func NewClient(accountSID, authToken, from string) *Client {
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	c := &Client{from: from}
	if accountSID != "" && authToken != "" {
		c.api = rest.Api
	}
	return c
}

// Send delivers text to a Korean mobile number and returns the message sid.
// The SDK call is not context aware, so ctx is only checked before sending.
func (c *Client) Send(ctx context.Context, to, text string) (string, error) {
	if c.api == nil || c.from == "" {
		return "", ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(E164(to))
	params.SetFrom(c.from)
	params.SetBody(text)

	resp, err := c.api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSend, err)
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// E164 converts a domestic Korean number to +82 form
func E164(phone string) string {
	digits := strings.TrimPrefix(domain.NormalizePhone(phone), "+")
	if strings.HasPrefix(phone, "+") {
		return "+" + digits
	}
	return "+82" + strings.TrimPrefix(digits, "0")
}
