package sync_campaign

import (
	"context"

	reconcileCampaign "github.com/whalechillz/mas-win-sub025/internal/usecase/reconcile_campaign"
)

type ReconcileCampaignUseCase interface {
	Execute(ctx context.Context, req *reconcileCampaign.Request) (*reconcileCampaign.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
