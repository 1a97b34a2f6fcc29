package booking_blocks

import (
	"errors"
	"net/http"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	"github.com/whalechillz/mas-win-sub025/internal/service/settings"
)

const (
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgInvalidRange       = "조회 기간이 올바르지 않습니다 (from, to: YYYY-MM-DD)"
	msgInvalidBlock       = "차단 시간 설정이 올바르지 않습니다"
	msgInvalidBlockID     = "차단 ID가 올바르지 않습니다"
	msgBlockNotFound      = "차단 시간을 찾을 수 없습니다"

	defaultRangeDays = 30
)

// Handler serves the admin booking block endpoints
type Handler struct {
	service  BlockService
	location *time.Location
	logger   Logger
}

func NewHandler(service BlockService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// List GET /api/v1/admin/booking-blocks?from=&to=
// Without a range the next 30 days from today are returned.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	from, err := handlers.QueryDate(r, "from", h.location)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	to, err := handlers.QueryDate(r, "to", h.location)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	if from == nil {
		now := time.Now().In(h.location)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.location)
		from = &today
	}
	if to == nil {
		end := from.AddDate(0, 0, defaultRangeDays)
		to = &end
	}

	blocks, err := h.service.ListBlocks(r.Context(), *from, *to)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRange)
		default:
			h.logger.Error("GET /admin/booking-blocks - Failed to list blocks: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, blocks)
}

// Create POST /api/v1/admin/booking-blocks
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/booking-blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(h.location)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBlock)
		return
	}

	block, err := h.service.CreateBlock(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidBlock, err.Error())
		default:
			h.logger.Error("POST /admin/booking-blocks - Failed to create block: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, block)
}

// Delete DELETE /api/v1/admin/booking-blocks/{blockId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "blockId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	if err := h.service.DeleteBlock(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, settings.ErrBlockNotFound):
			handlers.RespondNotFound(w, msgBlockNotFound)
		default:
			h.logger.Error("DELETE /admin/booking-blocks/{id} - Failed: block_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}
