package get_available_slots

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	"github.com/whalechillz/mas-win-sub025/internal/domain"
	getAvailableSlots "github.com/whalechillz/mas-win-sub025/internal/usecase/get_available_slots"
)

const (
	msgMissingDate     = "날짜는 필수입니다"
	msgInvalidDate     = "날짜 형식이 올바르지 않습니다 (YYYY-MM-DD)"
	msgInvalidDuration = "예약 시간(분)이 올바르지 않습니다"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/available?date=YYYY-MM-DD&duration=60
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
	if dateStr == "" {
		h.logger.Warn("GET /bookings/available - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /bookings/available - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	duration, err := handlers.QueryInt(r, "duration")
	if err != nil {
		h.logger.Warn("GET /bookings/available - %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{Date: date, DurationMinutes: duration})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /bookings/available - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
		default:
			h.logger.Error("GET /bookings/available - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/available - date=%s slots=%d", dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
