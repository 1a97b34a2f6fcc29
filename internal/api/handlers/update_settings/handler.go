package update_settings

import (
	"errors"
	"net/http"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	"github.com/whalechillz/mas-win-sub025/internal/service/settings"
	"github.com/whalechillz/mas-win-sub025/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgInvalidSettings    = "예약 설정값이 올바르지 않습니다"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/booking-settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/booking-settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /admin/booking-settings - Invalid settings: %v", err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidSettings, err.Error())
		default:
			h.logger.Error("PUT /admin/booking-settings - Failed to update settings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/booking-settings - Settings updated")
	handlers.RespondJSON(w, http.StatusOK, updated)
}
