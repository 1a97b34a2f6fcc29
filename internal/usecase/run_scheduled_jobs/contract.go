package run_scheduled_jobs

import (
	"context"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/internal/usecase/dispatch_campaign"
	"github.com/whalechillz/mas-win-sub025/internal/usecase/reconcile_campaign"
)

type CampaignRepository interface {
	List(ctx context.Context, filter domain.CampaignFilter) ([]*domain.CampaignMessage, error)
	MarkFailed(ctx context.Context, id int64, note string) error
}

type Dispatcher interface {
	Execute(ctx context.Context, req *dispatch_campaign.Request) (*dispatch_campaign.Response, error)
}

type Reconciler interface {
	Execute(ctx context.Context, req *reconcile_campaign.Request) (*reconcile_campaign.Response, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
