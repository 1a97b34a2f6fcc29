package create_booking

import (
	"errors"
	"net/http"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	bookingModels "github.com/whalechillz/mas-win-sub025/internal/service/bookings/models"
	createBooking "github.com/whalechillz/mas-win-sub025/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgInvalidDate        = "예약 날짜 형식이 올바르지 않습니다 (YYYY-MM-DD)"
	msgInvalidTime        = "시작 시간 형식이 올바르지 않습니다 (HH:MM)"
	msgInvalidInput       = "입력값이 올바르지 않습니다"
	msgDateNotBookable    = "선택한 날짜는 예약할 수 없습니다"
	msgInvalidTimeSlot    = "운영 시간 외의 시간입니다"
	msgTooLateToBook      = "예약 가능 시간이 지났습니다"
	msgSlotNotAvailable   = "선택한 시간은 이미 예약되었습니다"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, start=%s", req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidInput, err.Error())

		case errors.Is(err, createBooking.ErrDateNotBookable):
			h.logger.Warn("POST /bookings - Date not bookable: date=%s", req.BookingDate)
			handlers.RespondBadRequest(w, msgDateNotBookable)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: date=%s, start=%s", req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: date=%s, start=%s", req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, start=%s, error=%v",
				req.BookingDate, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, bookingModels.FromDomainBooking(result))
}
