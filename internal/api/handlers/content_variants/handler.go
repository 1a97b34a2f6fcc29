package content_variants

import (
	"net/http"
	"sort"
	"strings"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	"github.com/whalechillz/mas-win-sub025/internal/content"
)

const (
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgMissingSeed        = "기본 문구를 입력하세요"
	msgInvalidChannel     = "채널은 sms, lms, kakao 중 하나여야 합니다"

	maxSeedLength = 2000
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type VariantsRequest struct {
	SeedText  string   `json:"seedText"`
	Channel   string   `json:"channel"`
	BrandName string   `json:"brandName,omitempty"`
	CTA       string   `json:"cta,omitempty"`
	Keywords  []string `json:"keywords,omitempty"`
}

type VariantResponse struct {
	Technique string        `json:"technique"`
	Text      string        `json:"text"`
	Bytes     int           `json:"bytes"`
	Truncated bool          `json:"truncated"`
	Score     content.Score `json:"score"`
}

type Handler struct {
	brandName string
	logger    Logger
}

// NewHandler uses brandName when the request does not name one
func NewHandler(brandName string, logger Logger) *Handler {
	return &Handler{
		brandName: brandName,
		logger:    logger,
	}
}

// Handle POST /api/v1/admin/content/variants
// Variants are returned best score first.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req VariantsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	seed := strings.TrimSpace(req.SeedText)
	if seed == "" || len([]rune(seed)) > maxSeedLength {
		handlers.RespondBadRequest(w, msgMissingSeed)
		return
	}

	channel, ok := content.ParseChannel(req.Channel)
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidChannel)
		return
	}

	cfg := content.ChannelConfig{
		Channel:   channel,
		BrandName: strings.TrimSpace(req.BrandName),
		CTA:       req.CTA,
		Keywords:  req.Keywords,
	}
	if cfg.BrandName == "" {
		cfg.BrandName = h.brandName
	}

	variants := content.Generate(seed, cfg)
	out := make([]VariantResponse, 0, len(variants))
	for _, v := range variants {
		out = append(out, VariantResponse{
			Technique: string(v.Technique),
			Text:      v.Text,
			Bytes:     v.Bytes,
			Truncated: v.Truncated,
			Score:     content.ScoreVariant(v, cfg),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score.Total > out[j].Score.Total })

	h.logger.Info("POST /admin/content/variants - channel=%s variants=%d", channel, len(out))
	handlers.RespondJSON(w, http.StatusOK, out)
}
