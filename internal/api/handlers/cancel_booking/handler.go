package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	"github.com/whalechillz/mas-win-sub025/internal/api/middleware"
	"github.com/whalechillz/mas-win-sub025/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "예약 ID가 올바르지 않습니다"
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgNotFound           = "예약을 찾을 수 없습니다"
	msgCannotCancel       = "이미 취소된 예약입니다"
	msgInvalidReason      = "취소 사유가 너무 깁니다"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /admin/bookings/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	booking, err := h.service.Cancel(r.Context(), bookingID, req.CancellationReason)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("PATCH /admin/bookings/{id}/cancel - Already cancelled: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCannotCancel)
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReason)
		default:
			h.logger.Error("PATCH /admin/bookings/{id}/cancel - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	adminID, _ := middleware.GetUserID(r.Context())
	h.logger.Info("PATCH /admin/bookings/{id}/cancel - Booking cancelled: booking_id=%d, admin_id=%d", bookingID, adminID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
