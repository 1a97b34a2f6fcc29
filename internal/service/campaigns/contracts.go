package campaigns

import (
	"context"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

type CampaignRepository interface {
	Create(ctx context.Context, m *domain.CampaignMessage) (*domain.CampaignMessage, error)
	GetByID(ctx context.Context, id int64) (*domain.CampaignMessage, error)
	List(ctx context.Context, filter domain.CampaignFilter) ([]*domain.CampaignMessage, error)
	Update(ctx context.Context, m *domain.CampaignMessage) error
}

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
