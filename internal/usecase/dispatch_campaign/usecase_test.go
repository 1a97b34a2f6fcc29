package dispatch_campaign

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	campaignRepo "github.com/whalechillz/mas-win-sub025/internal/infra/storage/campaign"
	"github.com/whalechillz/mas-win-sub025/internal/integrations/solapi"
	"github.com/whalechillz/mas-win-sub025/pkg/ptr"
)

var now = time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return now }

type fakeCampaigns struct {
	msg        *domain.CampaignMessage
	dispatched struct {
		called    bool
		groupIDs  []string
		sentCount int
		imageURL  *string
	}
	status *domain.CampaignStatus
}

func (f *fakeCampaigns) GetByID(_ context.Context, id int64) (*domain.CampaignMessage, error) {
	if f.msg == nil || f.msg.ID != id {
		return nil, campaignRepo.ErrCampaignNotFound
	}
	cp := *f.msg
	return &cp, nil
}

func (f *fakeCampaigns) MarkDispatched(_ context.Context, _ int64, groupIDs []string, sentCount int, _ time.Time, imageURL *string) error {
	f.dispatched.called = true
	f.dispatched.groupIDs = groupIDs
	f.dispatched.sentCount = sentCount
	f.dispatched.imageURL = imageURL
	return nil
}

func (f *fakeCampaigns) SetStatus(_ context.Context, _ int64, status domain.CampaignStatus, _ *string) error {
	f.status = &status
	return nil
}

type fakeOptOuts struct {
	phones map[string]struct{}
	err    error
}

func (f *fakeOptOuts) OptedOut(context.Context, []string) (map[string]struct{}, error) {
	return f.phones, f.err
}

type fakeLogs struct {
	sent     map[string]struct{}
	inserted []domain.MessageLog
}

func (f *fakeLogs) SentPhones(context.Context, int64) (map[string]struct{}, error) {
	return f.sent, nil
}

func (f *fakeLogs) Insert(_ context.Context, logs []domain.MessageLog) (int64, error) {
	f.inserted = append(f.inserted, logs...)
	return int64(len(logs)), nil
}

type fakeGateway struct {
	sent      []solapi.Message
	calls     int
	rejected  []string
	err       error
	uploadErr error
	uploads   int
}

func (f *fakeGateway) SendMany(_ context.Context, messages []solapi.Message) (*solapi.SendResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.sent = messages
	return &solapi.SendResult{GroupID: "G-NEW", Rejected: f.rejected}, nil
}

func (f *fakeGateway) UploadImage(context.Context, string, []byte) (string, error) {
	f.uploads++
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return "IMG-1", nil
}

type fakeFetcher struct{ err error }

func (f fakeFetcher) Fetch(context.Context, string) ([]byte, string, error) {
	return []byte{0xff, 0xd8}, "image/jpeg", f.err
}

type fakePublisher struct{ keys []string }

func (f *fakePublisher) Publish(_ context.Context, key string, _ any) error {
	f.keys = append(f.keys, key)
	return nil
}

type nopMetrics struct{}

func (nopMetrics) ObserveDispatch(string, string, int) {}

type env struct {
	campaigns *fakeCampaigns
	optOuts   *fakeOptOuts
	logs      *fakeLogs
	gateway   *fakeGateway
	fetcher   fakeFetcher
	publisher *fakePublisher
}

func (e *env) useCase() *UseCase {
	return NewUseCase(e.campaigns, e.optOuts, e.logs, e.gateway, e.fetcher, e.publisher, nopMetrics{}, fixedClock{}, nopLogger{})
}

func newEnv(msg *domain.CampaignMessage) *env {
	return &env{
		campaigns: &fakeCampaigns{msg: msg},
		optOuts:   &fakeOptOuts{},
		logs:      &fakeLogs{},
		gateway:   &fakeGateway{},
		publisher: &fakePublisher{},
	}
}

func campaign() *domain.CampaignMessage {
	return &domain.CampaignMessage{
		ID:               5,
		MessageText:      "가을 시타 이벤트",
		MessageType:      "SMS300",
		RecipientNumbers: []string{"010-1111-2222", "01033334444", "02-123-4567", "010-1111-2222"},
		ShortLink:        ptr.Ptr("https://mas.go/x1"),
		GroupIDs:         []string{"G-OLD"},
		Status:           domain.CampaignDraft,
	}
}

func TestExecute_SendsBatch(t *testing.T) {
	e := newEnv(campaign())

	resp, err := e.useCase().Execute(context.Background(), &Request{CampaignID: 5})
	require.NoError(t, err)

	assert.Equal(t, 1, e.gateway.calls)
	require.Len(t, e.gateway.sent, 2)
	assert.Equal(t, "LMS", e.gateway.sent[0].Type)
	assert.Equal(t, "가을 시타 이벤트\nhttps://mas.go/x1", e.gateway.sent[0].Text)

	assert.Equal(t, []string{"G-OLD", "G-NEW"}, e.campaigns.dispatched.groupIDs)
	assert.Equal(t, 2, e.campaigns.dispatched.sentCount)
	assert.Len(t, e.logs.inserted, 2)
	assert.Equal(t, domain.CampaignSent, resp.Status)
	assert.Equal(t, 1, resp.Skipped.Invalid)
	assert.Equal(t, []string{"campaign.dispatched"}, e.publisher.keys)
}

func TestExecute_FiltersOptOutAndAlreadySent(t *testing.T) {
	e := newEnv(campaign())
	e.optOuts.phones = map[string]struct{}{"01033334444": {}}

	_, err := e.useCase().Execute(context.Background(), &Request{CampaignID: 5})
	require.NoError(t, err)
	require.Len(t, e.gateway.sent, 1)
	assert.Equal(t, "01011112222", e.gateway.sent[0].To)

	e2 := newEnv(campaign())
	e2.logs.sent = map[string]struct{}{"01011112222": {}, "01033334444": {}}

	resp, err := e2.useCase().Execute(context.Background(), &Request{CampaignID: 5})
	require.NoError(t, err)
	assert.Zero(t, e2.gateway.calls)
	assert.Equal(t, 2, resp.Skipped.AlreadySent)
	require.NotNil(t, e2.campaigns.status)
	assert.Equal(t, domain.CampaignSent, *e2.campaigns.status)
}

func TestExecute_OptOutLookupFailureProceeds(t *testing.T) {
	e := newEnv(campaign())
	e.optOuts.err = errors.New("customers table missing")

	_, err := e.useCase().Execute(context.Background(), &Request{CampaignID: 5})
	require.NoError(t, err)
	assert.Len(t, e.gateway.sent, 2)
}

func TestExecute_DryRunDoesNotSend(t *testing.T) {
	e := newEnv(campaign())

	resp, err := e.useCase().Execute(context.Background(), &Request{CampaignID: 5, DryRun: true})
	require.NoError(t, err)
	assert.True(t, resp.DryRun)
	assert.Len(t, resp.Recipients, 2)
	assert.Zero(t, e.gateway.calls)
	assert.False(t, e.campaigns.dispatched.called)
}

func TestExecute_MMSImage(t *testing.T) {
	msg := campaign()
	msg.MessageType = domain.MessageMMS
	msg.ImageURL = ptr.Ptr("https://cdn.example.com/a/poster.jpg")

	e := newEnv(msg)
	_, err := e.useCase().Execute(context.Background(), &Request{CampaignID: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, e.gateway.uploads)
	assert.Equal(t, "IMG-1", e.gateway.sent[0].ImageID)
	assert.Equal(t, "MMS", e.gateway.sent[0].Type)
	require.NotNil(t, e.campaigns.dispatched.imageURL)
	assert.Equal(t, "IMG-1", *e.campaigns.dispatched.imageURL)

	failing := newEnv(msg)
	failing.gateway.uploadErr = solapi.ErrUnavailable
	_, err = failing.useCase().Execute(context.Background(), &Request{CampaignID: 5})
	assert.ErrorIs(t, err, ErrImageUpload)
	assert.Zero(t, failing.gateway.calls)
}

func TestExecute_MMSWithoutImageFallsBackToLMS(t *testing.T) {
	msg := campaign()
	msg.MessageType = domain.MessageMMS

	e := newEnv(msg)
	resp, err := e.useCase().Execute(context.Background(), &Request{CampaignID: 5})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageLMS, resp.MessageType)
	assert.Equal(t, "LMS", e.gateway.sent[0].Type)
}

func TestExecute_Errors(t *testing.T) {
	msg := campaign()
	msg.RecipientNumbers = []string{"02-123-4567"}
	_, err := newEnv(msg).useCase().Execute(context.Background(), &Request{CampaignID: 5})
	assert.ErrorIs(t, err, ErrNoRecipients)

	_, err = newEnv(campaign()).useCase().Execute(context.Background(), &Request{CampaignID: 6})
	assert.ErrorIs(t, err, ErrCampaignNotFound)

	e := newEnv(campaign())
	e.gateway.err = &solapi.APIError{StatusCode: 400, Code: "ValidationError", Message: "bad sender"}
	_, err = e.useCase().Execute(context.Background(), &Request{CampaignID: 5})
	assert.ErrorIs(t, err, ErrGateway)
	assert.False(t, e.campaigns.dispatched.called)
	assert.Empty(t, e.logs.inserted)
}

func TestExecute_RejectedRecipientsAreNotLogged(t *testing.T) {
	e := newEnv(campaign())
	e.gateway.rejected = []string{"01033334444"}

	resp, err := e.useCase().Execute(context.Background(), &Request{CampaignID: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.SentCount)
	require.Len(t, e.logs.inserted, 1)
	assert.Equal(t, "01011112222", e.logs.inserted[0].Phone)
}
