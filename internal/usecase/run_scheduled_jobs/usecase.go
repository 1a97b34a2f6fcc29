package run_scheduled_jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/internal/usecase/dispatch_campaign"
	"github.com/whalechillz/mas-win-sub025/internal/usecase/reconcile_campaign"
)

const maxNoteLength = 200

// UseCase is the periodic job: send due campaigns, then refresh the counts of
// recently sent ones. Failures of one campaign never stop the others.
type UseCase struct {
	campaigns    CampaignRepository
	dispatcher   Dispatcher
	reconciler   Reconciler
	timeProvider TimeProvider
	lookbackDays int
	logger       Logger
}

// NewUseCase creates the scheduled job use case
func NewUseCase(
	campaigns CampaignRepository,
	dispatcher Dispatcher,
	reconciler Reconciler,
	timeProvider TimeProvider,
	lookbackDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		campaigns:    campaigns,
		dispatcher:   dispatcher,
		reconciler:   reconciler,
		timeProvider: timeProvider,
		lookbackDays: lookbackDays,
		logger:       logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Summary, error) {
	now := uc.timeProvider.Now()
	summary := &Summary{DryRun: req.DryRun, Failures: []JobFailure{}}

	if err := uc.dispatchDue(ctx, now, req.DryRun, summary); err != nil {
		return nil, err
	}
	if !req.DryRun {
		if err := uc.reconcileRecent(ctx, now, summary); err != nil {
			return nil, err
		}
	}

	uc.logger.Info("ScheduledJobs: due=%d dispatched=%d failed=%d reconciled=%d unchanged=%d deferred=%d dryRun=%t",
		summary.Due, summary.Dispatched, summary.DispatchFailed, summary.Reconciled, summary.Unchanged, summary.Deferred, req.DryRun)
	return summary, nil
}

func (uc *UseCase) dispatchDue(ctx context.Context, now time.Time, dryRun bool, summary *Summary) error {
	due, err := uc.campaigns.List(ctx, domain.CampaignFilter{
		Statuses:  []domain.CampaignStatus{domain.CampaignDraft, domain.CampaignScheduled},
		DueBefore: &now,
	})
	if err != nil {
		uc.logger.Error("ScheduledJobs: list due campaigns: %v", err)
		return fmt.Errorf("%w: list due campaigns: %v", ErrInternal, err)
	}

	for _, msg := range due {
		if !msg.IsDue(now) {
			continue
		}
		summary.Due++

		_, err := uc.dispatcher.Execute(ctx, &dispatch_campaign.Request{CampaignID: msg.ID, DryRun: dryRun})
		if err == nil {
			summary.Dispatched++
			continue
		}

		summary.DispatchFailed++
		summary.Failures = append(summary.Failures, JobFailure{CampaignID: msg.ID, Stage: "dispatch", Error: err.Error()})

		if dryRun || errors.Is(err, dispatch_campaign.ErrInternal) {
			uc.logger.Warn("ScheduledJobs: dispatch id=%d: %v", msg.ID, err)
			continue
		}

		note := failureNote(err)
		if markErr := uc.campaigns.MarkFailed(ctx, msg.ID, note); markErr != nil {
			uc.logger.Error("ScheduledJobs: mark id=%d failed: %v", msg.ID, markErr)
			continue
		}
		uc.logger.Warn("ScheduledJobs: id=%d marked failed: %s", msg.ID, note)
	}

	return nil
}

func (uc *UseCase) reconcileRecent(ctx context.Context, now time.Time, summary *Summary) error {
	// keyed on sent_at: every reconcile bumps updated_at
	since := now.AddDate(0, 0, -uc.lookbackDays)
	recent, err := uc.campaigns.List(ctx, domain.CampaignFilter{
		Statuses:     []domain.CampaignStatus{domain.CampaignSent, domain.CampaignPartial},
		WithGroupIDs: true,
		SentFrom:     &since,
	})
	if err != nil {
		uc.logger.Error("ScheduledJobs: list sent campaigns: %v", err)
		return fmt.Errorf("%w: list sent campaigns: %v", ErrInternal, err)
	}

	for _, msg := range recent {
		resp, err := uc.reconciler.Execute(ctx, &reconcile_campaign.Request{CampaignID: msg.ID})
		switch {
		case errors.Is(err, reconcile_campaign.ErrGatewayUnavailable):
			// retried on the next run
			summary.Deferred++
			uc.logger.Warn("ScheduledJobs: reconcile id=%d deferred: %v", msg.ID, err)
		case err != nil:
			summary.Failures = append(summary.Failures, JobFailure{CampaignID: msg.ID, Stage: "reconcile", Error: err.Error()})
			uc.logger.Error("ScheduledJobs: reconcile id=%d: %v", msg.ID, err)
		case resp.Updated:
			summary.Reconciled++
		default:
			summary.Unchanged++
		}
	}

	return nil
}

func failureNote(err error) string {
	var note string
	switch {
	case errors.Is(err, dispatch_campaign.ErrNoRecipients):
		note = "no valid recipients"
	case errors.Is(err, dispatch_campaign.ErrImageUpload):
		note = "image upload failed: " + err.Error()
	default:
		note = "send failed: " + err.Error()
	}
	if r := []rune(note); len(r) > maxNoteLength {
		note = string(r[:maxNoteLength])
	}
	return note
}
