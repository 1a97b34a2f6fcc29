package list_bookings

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	"github.com/whalechillz/mas-win-sub025/internal/service/bookings"
	"github.com/whalechillz/mas-win-sub025/internal/service/bookings/models"
)

const (
	msgInvalidFilter = "검색 조건이 올바르지 않습니다"

	defaultLimit = 100
	maxLimit     = 500
)

type Handler struct {
	service  BookingService
	location *time.Location
	logger   Logger
}

func NewHandler(service BookingService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/admin/bookings
// Query params: dateFrom, dateTo, status, phone, includeCancelled, limit, offset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid filter: %v", err)
		handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidFilter, err.Error())
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidFilter, err.Error())
		default:
			h.logger.Error("GET /admin/bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) parseRequest(r *http.Request) (*models.ListBookingsRequest, error) {
	q := r.URL.Query()
	req := &models.ListBookingsRequest{
		IncludeCancelled: handlers.QueryBool(r, "includeCancelled"),
		Limit:            defaultLimit,
	}

	var err error
	if req.DateFrom, err = handlers.QueryDate(r, "dateFrom", h.location); err != nil {
		return nil, err
	}
	if req.DateTo, err = handlers.QueryDate(r, "dateTo", h.location); err != nil {
		return nil, err
	}

	if s := strings.TrimSpace(q.Get("status")); s != "" {
		req.Status = &s
	}
	if p := strings.TrimSpace(q.Get("phone")); p != "" {
		req.Phone = &p
	}

	limit, err := handlers.QueryInt(r, "limit")
	if err != nil {
		return nil, err
	}
	if limit != nil && *limit > 0 {
		req.Limit = uint64(min(*limit, maxLimit))
	}

	offset, err := handlers.QueryInt(r, "offset")
	if err != nil {
		return nil, err
	}
	if offset != nil && *offset > 0 {
		req.Offset = uint64(*offset)
	}

	return req, nil
}
