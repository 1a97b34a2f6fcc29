package twilio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeCreator struct {
	params *twilioApi.CreateMessageParams
	err    error
}

func (f *fakeCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func TestSend(t *testing.T) {
	fake := &fakeCreator{}
	c := &Client{api: fake, from: "+15550001111"}

	sid, err := c.Send(context.Background(), "010-1234-5678", "예약이 확정되었습니다")
	require.NoError(t, err)
	assert.Equal(t, "SM123", sid)
	assert.Equal(t, "+821012345678", *fake.params.To)
	assert.Equal(t, "+15550001111", *fake.params.From)
}

func TestSend_Errors(t *testing.T) {
	_, err := NewClient("", "", "+1").Send(context.Background(), "01012345678", "x")
	assert.ErrorIs(t, err, ErrNotConfigured)

	c := &Client{api: &fakeCreator{err: errors.New("boom")}, from: "+1"}
	_, err = c.Send(context.Background(), "01012345678", "x")
	assert.ErrorIs(t, err, ErrSend)
}

func TestE164(t *testing.T) {
	assert.Equal(t, "+821012345678", E164("01012345678"))
	assert.Equal(t, "+821012345678", E164("+82 10-1234-5678"))
}
