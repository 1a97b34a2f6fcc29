package settings

import (
	"context"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

// SettingsRepository stores the operating rule set
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*domain.BookingSettings, error)
	UpsertSettings(ctx context.Context, s *domain.BookingSettings) (*domain.BookingSettings, error)
	ListHours(ctx context.Context) ([]*domain.OperatingHours, error)
	ReplaceHours(ctx context.Context, hours []*domain.OperatingHours) error
	ListBlocksBetween(ctx context.Context, from, to time.Time) ([]*domain.BookingBlock, error)
	CreateBlock(ctx context.Context, b *domain.BookingBlock) (*domain.BookingBlock, error)
	DeleteBlock(ctx context.Context, id int64) error
}

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
