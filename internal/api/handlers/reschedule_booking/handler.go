package reschedule_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	"github.com/whalechillz/mas-win-sub025/internal/api/middleware"
	"github.com/whalechillz/mas-win-sub025/internal/domain"
	bookingModels "github.com/whalechillz/mas-win-sub025/internal/service/bookings/models"
	rescheduleBooking "github.com/whalechillz/mas-win-sub025/internal/usecase/reschedule_booking"
	"github.com/whalechillz/mas-win-sub025/pkg/types"
)

const (
	msgInvalidBookingID   = "예약 ID가 올바르지 않습니다"
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgInvalidDate        = "예약 날짜 형식이 올바르지 않습니다 (YYYY-MM-DD)"
	msgInvalidTime        = "시작 시간 형식이 올바르지 않습니다 (HH:MM)"
	msgInvalidInput       = "입력값이 올바르지 않습니다"
	msgNotFound           = "예약을 찾을 수 없습니다"
	msgCannotReschedule   = "취소된 예약은 변경할 수 없습니다"
	msgDateNotBookable    = "선택한 날짜는 예약할 수 없습니다"
	msgInvalidTimeSlot    = "운영 시간 외의 시간입니다"
	msgTooLateToBook      = "예약 가능 시간이 지났습니다"
	msgSlotNotAvailable   = "선택한 시간은 이미 예약되었습니다"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	BookingDate     string `json:"bookingDate"`
	StartTime       string `json:"startTime"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"`
}

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /admin/bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.BookingDate)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), &rescheduleBooking.Request{
		BookingID:       bookingID,
		Date:            date,
		StartTime:       start,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
			h.logger.Warn("PUT /admin/bookings/{id} - Slot not available: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotNotAvailable)
		case errors.Is(err, rescheduleBooking.ErrCannotReschedule):
			handlers.RespondConflict(w, msgCannotReschedule)
		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidInput, err.Error())
		case errors.Is(err, rescheduleBooking.ErrDateNotBookable):
			handlers.RespondBadRequest(w, msgDateNotBookable)
		case errors.Is(err, rescheduleBooking.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)
		case errors.Is(err, rescheduleBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)
		default:
			h.logger.Error("PUT /admin/bookings/{id} - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	adminID, _ := middleware.GetUserID(r.Context())
	h.logger.Info("PUT /admin/bookings/{id} - Booking rescheduled: booking_id=%d, admin_id=%d", bookingID, adminID)
	handlers.RespondJSON(w, http.StatusOK, bookingModels.FromDomainBooking(booking))
}
