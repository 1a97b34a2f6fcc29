package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	"github.com/whalechillz/mas-win-sub025/internal/api/middleware"
	"github.com/whalechillz/mas-win-sub025/internal/service/bookings"
)

const (
	msgInvalidBookingID = "예약 ID가 올바르지 않습니다"
	msgNotFound         = "예약을 찾을 수 없습니다"
	msgCannotConfirm    = "대기 중인 예약만 확정할 수 있습니다"
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

// Handle PATCH /api/v1/admin/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/confirm - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.Confirm(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, bookings.ErrCannotConfirm):
			h.logger.Warn("PATCH /admin/bookings/{id}/confirm - Cannot confirm: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotConfirm)
		default:
			h.logger.Error("PATCH /admin/bookings/{id}/confirm - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	adminID, _ := middleware.GetUserID(r.Context())
	h.logger.Info("PATCH /admin/bookings/{id}/confirm - Booking confirmed: booking_id=%d, admin_id=%d", bookingID, adminID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
