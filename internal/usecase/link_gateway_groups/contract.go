package link_gateway_groups

import (
	"context"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/internal/integrations/solapi"
)

type CampaignRepository interface {
	List(ctx context.Context, filter domain.CampaignFilter) ([]*domain.CampaignMessage, error)
	ListLinkedGroupIDs(ctx context.Context) (map[string]struct{}, error)
	SetGroupIDs(ctx context.Context, id int64, groupIDs []string) error
}

type Gateway interface {
	ListGroups(ctx context.Context, from, to time.Time) ([]solapi.GroupSummary, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
