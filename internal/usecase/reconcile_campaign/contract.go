package reconcile_campaign

import (
	"context"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

type CampaignRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CampaignMessage, error)
	UpdateCounts(ctx context.Context, id int64, counts domain.StoredCounts, status domain.CampaignStatus) error
}

// Gateway returns the authoritative delivery aggregate of a group
type Gateway interface {
	GetGroupCounts(ctx context.Context, groupID string) (domain.DeliveryCounts, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, v any) error
}

type Metrics interface {
	ObserveReconcile(result string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
