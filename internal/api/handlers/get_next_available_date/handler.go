package get_next_available_date

import (
	"errors"
	"net/http"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	"github.com/whalechillz/mas-win-sub025/internal/api/handlers/get_available_slots"
	"github.com/whalechillz/mas-win-sub025/internal/domain"
	getNextAvailableDate "github.com/whalechillz/mas-win-sub025/internal/usecase/get_next_available_date"
)

const (
	msgInvalidDuration = "예약 시간(분)이 올바르지 않습니다"
	msgNoAvailableDate = "예약 가능한 날짜가 없습니다"
)

type Handler struct {
	useCase GetNextAvailableDateUseCase
	logger  Logger
}

func NewHandler(useCase GetNextAvailableDateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

type NextAvailableResponse struct {
	Date            string                              `json:"date"`
	DurationMinutes int                                 `json:"durationMinutes"`
	Slots           []get_available_slots.AvailableSlot `json:"slots"`
}

// Handle GET /api/v1/bookings/next-available?duration=60
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	duration, err := handlers.QueryInt(r, "duration")
	if err != nil {
		h.logger.Warn("GET /bookings/next-available - %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getNextAvailableDate.Request{DurationMinutes: duration})
	if err != nil {
		switch {
		case errors.Is(err, getNextAvailableDate.ErrInvalidInput):
			h.logger.Warn("GET /bookings/next-available - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
		case errors.Is(err, getNextAvailableDate.ErrNoAvailableDate):
			h.logger.Warn("GET /bookings/next-available - No available date")
			handlers.RespondNotFound(w, msgNoAvailableDate)
		default:
			h.logger.Error("GET /bookings/next-available - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &NextAvailableResponse{
		Date:            result.Date.Format(domain.DateFormat),
		DurationMinutes: result.DurationMinutes,
		Slots:           get_available_slots.FromSlots(result.Slots),
	})
}
