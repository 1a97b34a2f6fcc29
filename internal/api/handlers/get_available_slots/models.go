package get_available_slots

import (
	"github.com/whalechillz/mas-win-sub025/internal/domain"
	getAvailableSlots "github.com/whalechillz/mas-win-sub025/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
	Restriction     string          `json:"restriction,omitempty"`
}

type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// FromSlots converts calculator output to the HTTP shape
func FromSlots(slots []domain.AvailableSlot) []AvailableSlot {
	out := make([]AvailableSlot, len(slots))
	for i, s := range slots {
		out[i] = AvailableSlot{
			StartTime:       s.StartTime.String(),
			EndTime:         s.EndTime.String(),
			DurationMinutes: s.DurationMinutes,
		}
	}
	return out
}

func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           FromSlots(resp.Slots),
		Restriction:     string(resp.Restriction),
	}
}
