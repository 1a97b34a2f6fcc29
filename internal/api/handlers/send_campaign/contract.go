package send_campaign

import (
	"context"

	dispatchCampaign "github.com/whalechillz/mas-win-sub025/internal/usecase/dispatch_campaign"
)

type DispatchCampaignUseCase interface {
	Execute(ctx context.Context, req *dispatchCampaign.Request) (*dispatchCampaign.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
