package campaigns

import (
	"errors"
	"net/http"
	"strings"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	"github.com/whalechillz/mas-win-sub025/internal/service/campaigns"
	"github.com/whalechillz/mas-win-sub025/internal/service/campaigns/models"
)

const (
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgInvalidCampaignID  = "메시지 ID가 올바르지 않습니다"
	msgInvalidCampaign    = "메시지 내용이 올바르지 않습니다"
	msgInvalidFilter      = "검색 조건이 올바르지 않습니다"
	msgNotFound           = "메시지를 찾을 수 없습니다"
	msgNotEditable        = "이미 발송된 메시지는 수정할 수 없습니다"

	defaultLimit = 50
	maxLimit     = 200
)

// Handler serves campaign CRUD
type Handler struct {
	service CampaignService
	logger  Logger
}

func NewHandler(service CampaignService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/campaigns?status=&limit=&offset=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := &models.ListCampaignsRequest{Limit: defaultLimit}
	if s := strings.TrimSpace(r.URL.Query().Get("status")); s != "" {
		req.Status = &s
	}

	limit, err := handlers.QueryInt(r, "limit")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}
	if limit != nil && *limit > 0 {
		req.Limit = uint64(min(*limit, maxLimit))
	}
	offset, err := handlers.QueryInt(r, "offset")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}
	if offset != nil && *offset > 0 {
		req.Offset = uint64(*offset)
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, campaigns.ErrInvalidInput):
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidFilter, err.Error())
		default:
			h.logger.Error("GET /admin/campaigns - Failed to list campaigns: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/admin/campaigns
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCampaignRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/campaigns - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/campaigns", err)
		return
	}

	h.logger.Info("POST /admin/campaigns - Campaign created: id=%d", created.ID)
	handlers.RespondJSON(w, http.StatusCreated, created)
}

// Get GET /api/v1/admin/campaigns/{campaignId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "campaignId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCampaignID)
		return
	}

	campaign, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /admin/campaigns/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, campaign)
}

// Update PUT /api/v1/admin/campaigns/{campaignId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "campaignId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCampaignID)
		return
	}

	var req models.UpdateCampaignRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/campaigns/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/campaigns/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/campaigns/{id} - Campaign updated: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, updated)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, campaigns.ErrCampaignNotFound):
		handlers.RespondNotFound(w, msgNotFound)
	case errors.Is(err, campaigns.ErrNotEditable):
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondConflict(w, msgNotEditable)
	case errors.Is(err, campaigns.ErrInvalidInput):
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidCampaign, err.Error())
	default:
		h.logger.Error("%s - %v", route, err)
		handlers.RespondInternalError(w)
	}
}
