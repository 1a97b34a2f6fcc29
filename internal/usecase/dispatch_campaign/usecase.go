package dispatch_campaign

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/internal/infra/events"
	campaignRepo "github.com/whalechillz/mas-win-sub025/internal/infra/storage/campaign"
	"github.com/whalechillz/mas-win-sub025/internal/integrations/solapi"
)

// UseCase sends a campaign to its remaining recipients in one gateway batch
type UseCase struct {
	campaigns    CampaignRepository
	optOuts      OptOutChecker
	messageLogs  MessageLogRepository
	gateway      Gateway
	images       ImageFetcher
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the campaign dispatch use case
func NewUseCase(
	campaigns CampaignRepository,
	optOuts OptOutChecker,
	messageLogs MessageLogRepository,
	gateway Gateway,
	images ImageFetcher,
	publisher EventPublisher,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		campaigns:    campaigns,
		optOuts:      optOuts,
		messageLogs:  messageLogs,
		gateway:      gateway,
		images:       images,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.CampaignID <= 0 {
		return nil, fmt.Errorf("%w: campaignID must be positive", ErrInvalidInput)
	}

	msg, err := uc.campaigns.GetByID(ctx, req.CampaignID)
	if errors.Is(err, campaignRepo.ErrCampaignNotFound) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		uc.logger.Error("DispatchCampaign: load id=%d: %v", req.CampaignID, err)
		return nil, fmt.Errorf("%w: load campaign: %v", ErrInternal, err)
	}

	msgType, ok := domain.NormalizeMessageType(string(msg.MessageType))
	if !ok {
		return nil, fmt.Errorf("%w: unsupported message type %q", ErrInvalidInput, msg.MessageType)
	}
	if strings.TrimSpace(msg.MessageText) == "" {
		return nil, fmt.Errorf("%w: message text is empty", ErrInvalidInput)
	}

	resp := &Response{CampaignID: msg.ID, DryRun: req.DryRun, Status: msg.Status, SentCount: msg.SentCount}

	valid, invalid := domain.NormalizeRecipients(msg.RecipientNumbers)
	resp.Skipped.Invalid = len(invalid)
	if len(valid) == 0 {
		uc.logger.Warn("DispatchCampaign: id=%d has no valid recipients (%d invalid)", msg.ID, len(invalid))
		return nil, ErrNoRecipients
	}

	pending, err := uc.filterRecipients(ctx, msg.ID, valid, &resp.Skipped)
	if err != nil {
		return nil, err
	}

	if len(pending) == 0 {
		if resp.Skipped.AlreadySent == 0 {
			uc.logger.Warn("DispatchCampaign: id=%d every recipient opted out", msg.ID)
			return nil, ErrNoRecipients
		}
		return uc.completeAlreadySent(ctx, msg, resp)
	}

	resp.Recipients = pending
	resp.Text = msg.ComposedText()

	imageID, storedImage, err := uc.resolveImage(ctx, msg, msgType, req.DryRun)
	if err != nil {
		uc.metrics.ObserveDispatch("image_failed", string(msgType), 0)
		return nil, err
	}
	if msgType == domain.MessageMMS && imageID == "" {
		uc.logger.Warn("DispatchCampaign: id=%d is MMS without image, sending as LMS", msg.ID)
		msgType = domain.MessageLMS
	}
	resp.MessageType = msgType
	resp.ImageID = imageID

	if req.DryRun {
		uc.logger.Info("DispatchCampaign: dry run id=%d type=%s recipients=%d", msg.ID, msgType, len(pending))
		return resp, nil
	}

	messages := make([]solapi.Message, 0, len(pending))
	for _, phone := range pending {
		messages = append(messages, solapi.Message{
			To:      phone,
			Text:    resp.Text,
			Type:    string(msgType),
			ImageID: imageID,
		})
	}

	result, err := uc.gateway.SendMany(ctx, messages)
	if err != nil {
		uc.logger.Error("DispatchCampaign: id=%d gateway: %v", msg.ID, err)
		uc.metrics.ObserveDispatch("failed", string(msgType), 0)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	accepted := acceptedPhones(pending, result.Rejected)
	now := uc.timeProvider.Now()
	groupIDs := domain.AppendGroupID(msg.GroupIDs, result.GroupID)
	sentCount := min(msg.SentCount+len(accepted), len(valid))

	if err := uc.campaigns.MarkDispatched(ctx, msg.ID, groupIDs, sentCount, now, storedImage); err != nil {
		// the batch is already registered; the link sweep can recover the group id
		uc.logger.Error("DispatchCampaign: id=%d sent as group %s but not saved: %v", msg.ID, result.GroupID, err)
		return nil, fmt.Errorf("%w: save dispatch: %v", ErrInternal, err)
	}

	uc.writeLogs(ctx, msg.ID, accepted, result.GroupID, now)

	resp.GroupID = result.GroupID
	resp.Rejected = result.Rejected
	resp.Status = domain.CampaignSent
	resp.SentCount = sentCount

	uc.metrics.ObserveDispatch("sent", string(msgType), len(accepted))
	uc.logger.Info("DispatchCampaign: id=%d group=%s type=%s sent=%d rejected=%d",
		msg.ID, result.GroupID, msgType, len(accepted), len(result.Rejected))

	if err := uc.publisher.Publish(ctx, events.CampaignDispatched, events.CampaignEvent{
		CampaignID: msg.ID,
		Status:     string(domain.CampaignSent),
		GroupIDs:   groupIDs,
		Sent:       sentCount,
		Success:    msg.SuccessCount,
		Fail:       msg.FailCount,
		OccurredAt: now,
	}); err != nil {
		uc.logger.Warn("DispatchCampaign: publish event for id=%d: %v", msg.ID, err)
	}

	return resp, nil
}

// filterRecipients drops opted-out numbers and numbers already sent for this campaign.
// An opt-out lookup failure is logged and the send proceeds unfiltered.
func (uc *UseCase) filterRecipients(ctx context.Context, id int64, valid []string, skipped *Skipped) ([]string, error) {
	optedOut, err := uc.optOuts.OptedOut(ctx, valid)
	if err != nil {
		uc.logger.Warn("DispatchCampaign: id=%d opt-out lookup failed, sending unfiltered: %v", id, err)
		optedOut = nil
	}

	sent, err := uc.messageLogs.SentPhones(ctx, id)
	if err != nil {
		uc.logger.Error("DispatchCampaign: id=%d message log lookup: %v", id, err)
		return nil, fmt.Errorf("%w: message logs: %v", ErrInternal, err)
	}

	out := make([]string, 0, len(valid))
	for _, phone := range valid {
		if _, ok := optedOut[phone]; ok {
			skipped.OptedOut++
			continue
		}
		if _, ok := sent[phone]; ok {
			skipped.AlreadySent++
			continue
		}
		out = append(out, phone)
	}
	return out, nil
}

func (uc *UseCase) completeAlreadySent(ctx context.Context, msg *domain.CampaignMessage, resp *Response) (*Response, error) {
	resp.Status = domain.CampaignSent
	if resp.DryRun {
		return resp, nil
	}

	if msg.Status != domain.CampaignSent && msg.Status != domain.CampaignPartial {
		if err := uc.campaigns.SetStatus(ctx, msg.ID, domain.CampaignSent, nil); err != nil {
			uc.logger.Error("DispatchCampaign: id=%d set status: %v", msg.ID, err)
			return nil, fmt.Errorf("%w: set status: %v", ErrInternal, err)
		}
	} else {
		resp.Status = msg.Status
	}

	uc.metrics.ObserveDispatch("already_sent", string(msg.MessageType), 0)
	uc.logger.Info("DispatchCampaign: id=%d every recipient already received it", msg.ID)
	return resp, nil
}

// resolveImage returns the gateway image id to send with and, when a URL was
// re-hosted, the id to persist so a retry does not upload again.
func (uc *UseCase) resolveImage(ctx context.Context, msg *domain.CampaignMessage, msgType domain.MessageType, dryRun bool) (string, *string, error) {
	if msgType != domain.MessageMMS || msg.ImageURL == nil {
		return "", nil, nil
	}

	ref := strings.TrimSpace(*msg.ImageURL)
	if ref == "" {
		return "", nil, nil
	}
	if !isHTTPURL(ref) {
		return ref, nil, nil
	}
	if dryRun {
		return ref, nil, nil
	}

	data, _, err := uc.images.Fetch(ctx, ref)
	if err != nil {
		uc.logger.Error("DispatchCampaign: id=%d fetch image %s: %v", msg.ID, ref, err)
		return "", nil, fmt.Errorf("%w: fetch: %v", ErrImageUpload, err)
	}

	imageID, err := uc.gateway.UploadImage(ctx, imageName(ref), data)
	if err != nil {
		uc.logger.Error("DispatchCampaign: id=%d upload image: %v", msg.ID, err)
		return "", nil, fmt.Errorf("%w: upload: %v", ErrImageUpload, err)
	}

	uc.logger.Info("DispatchCampaign: id=%d image re-hosted as %s", msg.ID, imageID)
	return imageID, &imageID, nil
}

// writeLogs records accepted recipients; a failure only risks a duplicate on resend
func (uc *UseCase) writeLogs(ctx context.Context, id int64, phones []string, groupID string, sentAt time.Time) {
	logs := make([]domain.MessageLog, 0, len(phones))
	for _, phone := range phones {
		logs = append(logs, domain.MessageLog{ContentID: id, Phone: phone, GroupID: groupID, SentAt: sentAt})
	}
	if _, err := uc.messageLogs.Insert(ctx, logs); err != nil {
		uc.logger.Error("DispatchCampaign: id=%d write %d message logs: %v", id, len(logs), err)
	}
}

func acceptedPhones(pending, rejected []string) []string {
	if len(rejected) == 0 {
		return pending
	}
	drop := make(map[string]struct{}, len(rejected))
	for _, r := range rejected {
		drop[domain.NormalizePhone(r)] = struct{}{}
	}
	out := make([]string, 0, len(pending))
	for _, p := range pending {
		if _, ok := drop[p]; !ok {
			out = append(out, p)
		}
	}
	return out
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func imageName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err == nil {
		if base := path.Base(u.Path); base != "" && base != "/" && base != "." {
			return base
		}
	}
	return uuid.NewString() + ".jpg"
}
