package booking_blocks

import (
	"errors"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/internal/service/settings/models"
	"github.com/whalechillz/mas-win-sub025/pkg/types"
)

var errInvalidBlock = errors.New("invalid block date or start time")

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	IsVirtual       bool    `json:"isVirtual"`
	Reason          *string `json:"reason,omitempty"`
}

func (r *CreateBlockRequest) ToServiceRequest(loc *time.Location) (*models.CreateBlockRequest, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, loc)
	if err != nil {
		return nil, errInvalidBlock
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidBlock
	}

	return &models.CreateBlockRequest{
		Date:            date,
		StartTime:       start,
		DurationMinutes: r.DurationMinutes,
		IsVirtual:       r.IsVirtual,
		Reason:          r.Reason,
	}, nil
}
