package content

import (
	"strings"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

// Channel is a delivery surface with its own length limit
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelLMS   Channel = "lms"
	ChannelKakao Channel = "kakao"
)

// Technique is a persuasion principle a variant leans on
type Technique string

const (
	TechniqueSocialProof Technique = "social_proof"
	TechniqueScarcity    Technique = "scarcity"
	TechniqueUrgency     Technique = "urgency"
	TechniqueReciprocity Technique = "reciprocity"
	TechniqueAuthority   Technique = "authority"
	TechniqueConsistency Technique = "consistency"
)

// Techniques in generation order
var Techniques = []Technique{
	TechniqueSocialProof,
	TechniqueScarcity,
	TechniqueUrgency,
	TechniqueReciprocity,
	TechniqueAuthority,
	TechniqueConsistency,
}

// ChannelConfig describes where a variant will be sent
type ChannelConfig struct {
	Channel   Channel
	BrandName string
	CTA       string
	// Keywords the target audience responds to; used by Score
	Keywords []string
}

// MaxBytes returns the channel's length limit in gateway bytes
func (c ChannelConfig) MaxBytes() int {
	switch c.Channel {
	case ChannelSMS:
		return domain.SMSMaxBytes
	case ChannelKakao:
		return 1000
	default:
		return 2000
	}
}

// ParseChannel maps free-form input to a Channel; ok is false for unknown values
func ParseChannel(s string) (Channel, bool) {
	switch Channel(strings.ToLower(strings.TrimSpace(s))) {
	case ChannelSMS:
		return ChannelSMS, true
	case ChannelLMS, "mms":
		return ChannelLMS, true
	case ChannelKakao:
		return ChannelKakao, true
	}
	return "", false
}

// Variant is one generated message
type Variant struct {
	Technique Technique
	Text      string
	Bytes     int
	Truncated bool
}

var hooks = map[Technique]string{
	TechniqueSocialProof: "10,000명 이상의 골퍼가 선택했습니다.",
	TechniqueScarcity:    "한정 수량 특별 혜택입니다.",
	TechniqueUrgency:     "이번 주 마감! 서두르세요.",
	TechniqueReciprocity: "무료 피팅 상담과 시타 체험을 드립니다.",
	TechniqueAuthority:   "KGFA 인증 피팅 전문가가 직접 상담합니다.",
	TechniqueConsistency: "지난번 상담에 이어 한 걸음 더 나아가 보세요.",
}

const defaultCTA = "지금 바로 예약하세요!"

// Generate builds one variant per technique from the seed text
func Generate(seed string, cfg ChannelConfig) []Variant {
	seed = strings.TrimSpace(seed)
	cta := strings.TrimSpace(cfg.CTA)
	if cta == "" {
		cta = defaultCTA
	}
	brand := strings.TrimSpace(cfg.BrandName)
	limit := cfg.MaxBytes()

	variants := make([]Variant, 0, len(Techniques))
	for _, t := range Techniques {
		text := compose(brand, hooks[t], seed, cta, cfg.Channel)
		v := Variant{Technique: t, Text: text}
		if domain.MessageBytes(text) > limit {
			v.Text = strings.TrimSpace(domain.TruncateBytes(text, limit))
			v.Truncated = true
		}
		v.Bytes = domain.MessageBytes(v.Text)
		variants = append(variants, v)
	}
	return variants
}

func compose(brand, hook, seed, cta string, ch Channel) string {
	sep := "\n"
	if ch == ChannelSMS {
		sep = " "
	}

	parts := make([]string, 0, 4)
	if brand != "" {
		parts = append(parts, "["+brand+"]")
	}
	parts = append(parts, hook)
	if seed != "" {
		parts = append(parts, seed)
	}
	parts = append(parts, cta)
	return strings.Join(parts, sep)
}
