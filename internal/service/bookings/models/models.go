package models

import (
	"errors"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

var ErrInvalidStatus = errors.New("invalid booking status")

// ListBookingsRequest is the admin list filter
type ListBookingsRequest struct {
	DateFrom         *time.Time
	DateTo           *time.Time
	Status           *string
	Phone            *string
	IncludeCancelled bool
	Limit            uint64
	Offset           uint64
}

// ToDomainFilter validates the request and converts it to the repository filter
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		DateFrom:         r.DateFrom,
		DateTo:           r.DateTo,
		IncludeCancelled: r.IncludeCancelled,
		Limit:            r.Limit,
		Offset:           r.Offset,
	}

	if r.Status != nil {
		status, ok := domain.ParseBookingStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
		if status == domain.StatusCancelled {
			filter.IncludeCancelled = true
		}
	}

	if r.Phone != nil {
		phone := domain.NormalizePhone(*r.Phone)
		if phone != "" {
			filter.Phone = &phone
		}
	}

	return filter, nil
}

// BookingResponse is the JSON shape of a booking
type BookingResponse struct {
	ID              int64   `json:"id"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerEmail   *string `json:"customerEmail,omitempty"`
	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // RFC 3339

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking converts a booking to its response DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		CustomerEmail:      b.CustomerEmail,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if end, err := b.StartTime.AddMinutes(b.DurationMinutes); err == nil {
		resp.EndTime = end.String()
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
