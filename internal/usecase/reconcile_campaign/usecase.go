package reconcile_campaign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/internal/infra/events"
	campaignRepo "github.com/whalechillz/mas-win-sub025/internal/infra/storage/campaign"
)

// UseCase overwrites a campaign's counts and status with the gateway's aggregate.
// Running it twice against the same gateway state stores the same row.
type UseCase struct {
	campaigns CampaignRepository
	gateway   Gateway
	publisher EventPublisher
	metrics   Metrics
	logger    Logger
}

// NewUseCase creates the campaign reconcile use case
func NewUseCase(campaigns CampaignRepository, gateway Gateway, publisher EventPublisher, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		campaigns: campaigns,
		gateway:   gateway,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
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
		uc.logger.Error("ReconcileCampaign: load id=%d: %v", req.CampaignID, err)
		return nil, fmt.Errorf("%w: load campaign: %v", ErrInternal, err)
	}

	groupIDs := domain.ParseGroupIDs(domain.JoinGroupIDs(msg.GroupIDs))
	if len(groupIDs) == 0 {
		return nil, ErrNotDispatched
	}

	var total domain.DeliveryCounts
	for _, groupID := range groupIDs {
		counts, err := uc.gateway.GetGroupCounts(ctx, groupID)
		if err != nil {
			uc.metrics.ObserveReconcile("deferred")
			uc.logger.Warn("ReconcileCampaign: id=%d group=%s deferred: %v", msg.ID, groupID, err)
			return nil, fmt.Errorf("%w: group %s: %v", ErrGatewayUnavailable, groupID, err)
		}
		total = total.Add(counts)
	}

	resp := &Response{
		CampaignID:   msg.ID,
		GroupIDs:     groupIDs,
		Status:       msg.Status,
		SentCount:    msg.SentCount,
		SuccessCount: msg.SuccessCount,
		FailCount:    msg.FailCount,
		SendingCount: total.Sending,
	}

	if total.Total == 0 {
		uc.metrics.ObserveReconcile("not_registered")
		uc.logger.Info("ReconcileCampaign: id=%d groups not registered yet, row unchanged", msg.ID)
		return resp, nil
	}

	valid, _ := domain.NormalizeRecipients(msg.RecipientNumbers)
	stored := domain.ClampCounts(total, len(valid))
	status := domain.DeriveStatus(domain.DeliveryCounts{
		Total:   stored.Sent,
		Success: stored.Success,
		Fail:    stored.Fail,
		Sending: total.Sending,
	})

	if err := uc.campaigns.UpdateCounts(ctx, msg.ID, stored, status); err != nil {
		uc.metrics.ObserveReconcile("error")
		uc.logger.Error("ReconcileCampaign: id=%d update counts: %v", msg.ID, err)
		return nil, fmt.Errorf("%w: update counts: %v", ErrInternal, err)
	}

	resp.Status = status
	resp.SentCount = stored.Sent
	resp.SuccessCount = stored.Success
	resp.FailCount = stored.Fail
	resp.Updated = true

	uc.metrics.ObserveReconcile("ok")
	uc.logger.Info("ReconcileCampaign: id=%d groups=%d status=%s sent=%d success=%d fail=%d sending=%d",
		msg.ID, len(groupIDs), status, stored.Sent, stored.Success, stored.Fail, total.Sending)

	if err := uc.publisher.Publish(ctx, events.CampaignReconciled, events.CampaignEvent{
		CampaignID: msg.ID,
		Status:     string(status),
		GroupIDs:   groupIDs,
		Sent:       stored.Sent,
		Success:    stored.Success,
		Fail:       stored.Fail,
		OccurredAt: time.Now(),
	}); err != nil {
		uc.logger.Warn("ReconcileCampaign: publish event for id=%d: %v", msg.ID, err)
	}

	return resp, nil
}
