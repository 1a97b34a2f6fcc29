package models

import (
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	"github.com/whalechillz/mas-win-sub025/pkg/types"
)

// UpdateSettingsRequest only changes the fields that are set.
// A non-nil Hours replaces the whole weekly schedule.
type UpdateSettingsRequest struct {
	DisableSameDayBooking  *bool                `json:"disableSameDayBooking,omitempty"`
	DisableWeekendBooking  *bool                `json:"disableWeekendBooking,omitempty"`
	MinAdvanceHours        *int                 `json:"minAdvanceHours,omitempty"`
	MaxAdvanceDays         *int                 `json:"maxAdvanceDays,omitempty"` // 0 = unlimited
	SlotStepMinutes        *int                 `json:"slotStepMinutes,omitempty"`
	DefaultDurationMinutes *int                 `json:"defaultDurationMinutes,omitempty"`
	Hours                  *[]OperatingHoursDTO `json:"hours,omitempty"`
}

type OperatingHoursDTO struct {
	DayOfWeek   int              `json:"dayOfWeek"` // 0 = Sunday
	StartTime   types.TimeString `json:"startTime"`
	EndTime     types.TimeString `json:"endTime"`
	IsAvailable bool             `json:"isAvailable"`
}

type CreateBlockRequest struct {
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	IsVirtual       bool
	Reason          *string
}

type SettingsResponse struct {
	DisableSameDayBooking  bool                `json:"disableSameDayBooking"`
	DisableWeekendBooking  bool                `json:"disableWeekendBooking"`
	MinAdvanceHours        int                 `json:"minAdvanceHours"`
	MaxAdvanceDays         int                 `json:"maxAdvanceDays"`
	SlotStepMinutes        int                 `json:"slotStepMinutes"`
	DefaultDurationMinutes int                 `json:"defaultDurationMinutes"`
	Hours                  []OperatingHoursDTO `json:"hours"`
	UpdatedAt              *time.Time          `json:"updatedAt,omitempty"`
}

type BlockResponse struct {
	ID              int64     `json:"id"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	IsVirtual       bool      `json:"isVirtual"`
	Reason          *string   `json:"reason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func FromDomainSettings(s domain.BookingSettings, hours []*domain.OperatingHours) *SettingsResponse {
	resp := &SettingsResponse{
		DisableSameDayBooking:  s.DisableSameDayBooking,
		DisableWeekendBooking:  s.DisableWeekendBooking,
		MinAdvanceHours:        s.MinAdvanceHours,
		MaxAdvanceDays:         s.MaxAdvanceDays,
		SlotStepMinutes:        s.SlotStepMinutes,
		DefaultDurationMinutes: s.DefaultDurationMinutes,
		Hours:                  make([]OperatingHoursDTO, 0, len(hours)),
	}
	if !s.UpdatedAt.IsZero() {
		updated := s.UpdatedAt
		resp.UpdatedAt = &updated
	}
	for _, h := range hours {
		resp.Hours = append(resp.Hours, OperatingHoursDTO{
			DayOfWeek:   int(h.DayOfWeek),
			StartTime:   h.StartTime,
			EndTime:     h.EndTime,
			IsAvailable: h.IsAvailable,
		})
	}
	return resp
}

func FromDomainBlock(b *domain.BookingBlock) *BlockResponse {
	return &BlockResponse{
		ID:              b.ID,
		Date:            b.Date.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		IsVirtual:       b.IsVirtual,
		Reason:          b.Reason,
		CreatedAt:       b.CreatedAt,
	}
}
