package booking_blocks

import (
	"context"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/service/settings/models"
)

type BlockService interface {
	ListBlocks(ctx context.Context, from, to time.Time) ([]*models.BlockResponse, error)
	CreateBlock(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error)
	DeleteBlock(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
