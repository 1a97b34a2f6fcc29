package health

import (
	"context"
	"net/http"
	"time"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Error(format string, v ...interface{})
}

type Handler struct {
	db     Pinger
	logger Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{db: db, logger: logger}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("GET /health - database ping failed: %v", err)
		handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
