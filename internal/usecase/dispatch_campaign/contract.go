package dispatch_campaign

import (
	"context"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/internal/integrations/solapi"
)

type CampaignRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CampaignMessage, error)
	MarkDispatched(ctx context.Context, id int64, groupIDs []string, sentCount int, sentAt time.Time, imageURL *string) error
	SetStatus(ctx context.Context, id int64, status domain.CampaignStatus, note *string) error
}

// OptOutChecker returns the subset of phones whose owners refused marketing messages
type OptOutChecker interface {
	OptedOut(ctx context.Context, phones []string) (map[string]struct{}, error)
}

// MessageLogRepository tracks which phones already received a campaign
type MessageLogRepository interface {
	SentPhones(ctx context.Context, contentID int64) (map[string]struct{}, error)
	Insert(ctx context.Context, logs []domain.MessageLog) (int64, error)
}

// Gateway is the messaging gateway
type Gateway interface {
	SendMany(ctx context.Context, messages []solapi.Message) (*solapi.SendResult, error)
	UploadImage(ctx context.Context, name string, data []byte) (string, error)
}

// ImageFetcher downloads MMS images referenced by URL
type ImageFetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, v any) error
}

type Metrics interface {
	ObserveDispatch(result string, messageType string, recipients int)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
