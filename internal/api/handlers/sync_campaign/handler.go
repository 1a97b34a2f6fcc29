package sync_campaign

import (
	"errors"
	"net/http"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	reconcileCampaign "github.com/whalechillz/mas-win-sub025/internal/usecase/reconcile_campaign"
)

const (
	msgInvalidCampaignID = "메시지 ID가 올바르지 않습니다"
	msgNotFound          = "메시지를 찾을 수 없습니다"
	msgNotDispatched     = "아직 발송되지 않은 메시지입니다"
)

// DeferredResponse is returned when the gateway could not be read; the stored row is unchanged
type DeferredResponse struct {
	CampaignID int64  `json:"campaignId"`
	Deferred   bool   `json:"deferred"`
	Reason     string `json:"reason"`
}

type Handler struct {
	useCase ReconcileCampaignUseCase
	logger  Logger
}

func NewHandler(useCase ReconcileCampaignUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/campaigns/{campaignId}/sync
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "campaignId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCampaignID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &reconcileCampaign.Request{CampaignID: id})
	if err != nil {
		switch {
		case errors.Is(err, reconcileCampaign.ErrCampaignNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, reconcileCampaign.ErrNotDispatched):
			handlers.RespondBadRequest(w, msgNotDispatched)
		case errors.Is(err, reconcileCampaign.ErrGatewayUnavailable):
			h.logger.Warn("POST /admin/campaigns/{id}/sync - Deferred: id=%d, error=%v", id, err)
			handlers.RespondJSON(w, http.StatusOK, &DeferredResponse{
				CampaignID: id,
				Deferred:   true,
				Reason:     handlers.TruncateDetails(err.Error()),
			})
		default:
			h.logger.Error("POST /admin/campaigns/{id}/sync - Failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
