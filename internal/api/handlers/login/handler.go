package login

import (
	"errors"
	"net/http"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	"github.com/whalechillz/mas-win-sub025/internal/service/auth"
	"github.com/whalechillz/mas-win-sub025/internal/service/auth/models"
)

const (
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgInvalidCredentials = "이메일 또는 비밀번호가 올바르지 않습니다"
	msgMissingCredentials = "이메일과 비밀번호를 입력하세요"
)

type Handler struct {
	service AuthService
	logger  Logger
}

func NewHandler(service AuthService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingCredentials)
		case errors.Is(err, auth.ErrInvalidCredentials):
			handlers.RespondUnauthorized(w, msgInvalidCredentials)
		default:
			h.logger.Error("POST /auth/login - Login failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
