package link_gateway_groups

import (
	"errors"
	"net/http"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	linkGatewayGroups "github.com/whalechillz/mas-win-sub025/internal/usecase/link_gateway_groups"
)

const (
	msgInvalidLookback    = "조회 시간 범위가 올바르지 않습니다"
	msgGatewayUnavailable = "메시지 서비스에 연결할 수 없습니다"
)

type Handler struct {
	useCase LinkGatewayGroupsUseCase
	logger  Logger
}

func NewHandler(useCase LinkGatewayGroupsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/campaigns/link-groups[?hours=24&dryRun=true]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hours, err := handlers.QueryInt(r, "hours")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidLookback)
		return
	}

	req := &linkGatewayGroups.Request{DryRun: handlers.QueryBool(r, "dryRun")}
	if hours != nil {
		req.LookbackHours = *hours
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, linkGatewayGroups.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidLookback)
		case errors.Is(err, linkGatewayGroups.ErrGatewayUnavailable):
			h.logger.Error("POST /admin/campaigns/link-groups - Gateway unavailable: %v", err)
			handlers.RespondUpstreamError(w, msgGatewayUnavailable, err)
		default:
			h.logger.Error("POST /admin/campaigns/link-groups - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/campaigns/link-groups - linked=%d unmatched=%d dry_run=%t",
		len(result.Linked), len(result.Unmatched), result.DryRun)
	handlers.RespondJSON(w, http.StatusOK, result)
}
