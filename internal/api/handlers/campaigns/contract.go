package campaigns

import (
	"context"

	"github.com/whalechillz/mas-win-sub025/internal/service/campaigns/models"
)

type CampaignService interface {
	Create(ctx context.Context, req *models.CreateCampaignRequest) (*models.CampaignResponse, error)
	Get(ctx context.Context, id int64) (*models.CampaignResponse, error)
	List(ctx context.Context, req *models.ListCampaignsRequest) (*models.CampaignListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateCampaignRequest) (*models.CampaignResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
