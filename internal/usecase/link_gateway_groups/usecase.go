package link_gateway_groups

import (
	"context"
	"fmt"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

// UseCase attaches gateway groups that no campaign references to the campaign
// whose sent_at is closest to the group's creation time, within a window.
type UseCase struct {
	campaigns     CampaignRepository
	gateway       Gateway
	timeProvider  TimeProvider
	lookbackHours int
	window        time.Duration
	logger        Logger
}

// NewUseCase creates the gateway group linking use case
func NewUseCase(
	campaigns CampaignRepository,
	gateway Gateway,
	timeProvider TimeProvider,
	lookbackHours int,
	windowMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		campaigns:     campaigns,
		gateway:       gateway,
		timeProvider:  timeProvider,
		lookbackHours: lookbackHours,
		window:        time.Duration(windowMinutes) * time.Minute,
		logger:        logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	lookback := uc.lookbackHours
	if req.LookbackHours > 0 {
		lookback = req.LookbackHours
	}
	if lookback <= 0 || lookback > 24*31 {
		return nil, fmt.Errorf("%w: lookbackHours must be between 1 and %d", ErrInvalidInput, 24*31)
	}

	now := uc.timeProvider.Now()
	from := now.Add(-time.Duration(lookback) * time.Hour)

	groups, err := uc.gateway.ListGroups(ctx, from, now)
	if err != nil {
		uc.logger.Warn("LinkGatewayGroups: list groups: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	linked, err := uc.campaigns.ListLinkedGroupIDs(ctx)
	if err != nil {
		uc.logger.Error("LinkGatewayGroups: linked ids: %v", err)
		return nil, fmt.Errorf("%w: linked group ids: %v", ErrInternal, err)
	}

	sentFrom, sentTo := from.Add(-uc.window), now.Add(uc.window)
	candidates, err := uc.campaigns.List(ctx, domain.CampaignFilter{SentFrom: &sentFrom, SentTo: &sentTo})
	if err != nil {
		uc.logger.Error("LinkGatewayGroups: list campaigns: %v", err)
		return nil, fmt.Errorf("%w: list campaigns: %v", ErrInternal, err)
	}

	resp := &Response{Linked: []Link{}, Unmatched: []string{}, DryRun: req.DryRun}

	for _, g := range groups {
		if _, ok := linked[g.GroupID]; ok {
			continue
		}

		target := closest(candidates, g.CreatedAt, uc.window)
		if target == nil {
			resp.Unmatched = append(resp.Unmatched, g.GroupID)
			continue
		}

		ids := domain.AppendGroupID(target.GroupIDs, g.GroupID)
		if !req.DryRun {
			if err := uc.campaigns.SetGroupIDs(ctx, target.ID, ids); err != nil {
				uc.logger.Error("LinkGatewayGroups: link %s to id=%d: %v", g.GroupID, target.ID, err)
				return nil, fmt.Errorf("%w: link group: %v", ErrInternal, err)
			}
		}
		target.GroupIDs = ids
		linked[g.GroupID] = struct{}{}

		resp.Linked = append(resp.Linked, Link{GroupID: g.GroupID, CampaignID: target.ID})
		uc.logger.Info("LinkGatewayGroups: group %s -> campaign id=%d", g.GroupID, target.ID)
	}

	uc.logger.Info("LinkGatewayGroups: groups=%d linked=%d unmatched=%d dryRun=%t",
		len(groups), len(resp.Linked), len(resp.Unmatched), req.DryRun)
	return resp, nil
}

// closest returns the campaign sent nearest to at, if within window
func closest(candidates []*domain.CampaignMessage, at time.Time, window time.Duration) *domain.CampaignMessage {
	var (
		best     *domain.CampaignMessage
		bestDiff time.Duration
	)
	for _, c := range candidates {
		if c.SentAt == nil {
			continue
		}
		diff := c.SentAt.Sub(at).Abs()
		if diff > window {
			continue
		}
		if best == nil || diff < bestDiff {
			best, bestDiff = c, diff
		}
	}
	return best
}
