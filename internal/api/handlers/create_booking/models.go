package create_booking

import (
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
	createBooking "github.com/whalechillz/mas-win-sub025/internal/usecase/create_booking"
	"github.com/whalechillz/mas-win-sub025/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerEmail   *string `json:"customerEmail,omitempty"`
	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Status          string  `json:"status,omitempty"`
}

// ToUseCaseRequest parses the date and time fields
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, errInvalidDate
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createBooking.Request{
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerEmail:   r.CustomerEmail,
		Date:            date,
		StartTime:       start,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
		Status:          domain.BookingStatus(r.Status),
	}, nil
}
