package send_campaign

import (
	"errors"
	"net/http"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	dispatchCampaign "github.com/whalechillz/mas-win-sub025/internal/usecase/dispatch_campaign"
)

const (
	msgInvalidCampaignID = "메시지 ID가 올바르지 않습니다"
	msgNotFound          = "메시지를 찾을 수 없습니다"
	msgNoRecipients      = "발송 가능한 수신자가 없습니다"
	msgInvalidInput      = "발송 요청이 올바르지 않습니다"
	msgImageUpload       = "이미지 업로드에 실패했습니다"
	msgGateway           = "메시지 발송에 실패했습니다"
)

type Handler struct {
	useCase DispatchCampaignUseCase
	logger  Logger
}

func NewHandler(useCase DispatchCampaignUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/campaigns/{campaignId}/send[?dryRun=true]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "campaignId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCampaignID)
		return
	}
	dryRun := handlers.QueryBool(r, "dryRun")

	result, err := h.useCase.Execute(r.Context(), &dispatchCampaign.Request{CampaignID: id, DryRun: dryRun})
	if err != nil {
		switch {
		case errors.Is(err, dispatchCampaign.ErrCampaignNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, dispatchCampaign.ErrNoRecipients):
			h.logger.Warn("POST /admin/campaigns/{id}/send - No recipients: id=%d", id)
			handlers.RespondBadRequest(w, msgNoRecipients)
		case errors.Is(err, dispatchCampaign.ErrInvalidInput):
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidInput, err.Error())
		case errors.Is(err, dispatchCampaign.ErrImageUpload):
			h.logger.Error("POST /admin/campaigns/{id}/send - Image upload failed: id=%d, error=%v", id, err)
			handlers.RespondUpstreamError(w, msgImageUpload, err)
		case errors.Is(err, dispatchCampaign.ErrGateway):
			h.logger.Error("POST /admin/campaigns/{id}/send - Gateway failed: id=%d, error=%v", id, err)
			handlers.RespondUpstreamError(w, msgGateway, err)
		default:
			h.logger.Error("POST /admin/campaigns/{id}/send - Failed: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/campaigns/{id}/send - id=%d dry_run=%t recipients=%d group=%s",
		id, dryRun, len(result.Recipients), result.GroupID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
