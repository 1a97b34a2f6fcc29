package content

import (
	"math"
	"strings"
)

// Score rates a variant on four axes, each 0..100
type Score struct {
	AudienceMatch       int `json:"audienceMatch"`
	PsychEffect         int `json:"psychEffect"`
	BrandFit            int `json:"brandFit"`
	ConversionPotential int `json:"conversionPotential"`
	Total               int `json:"total"`
}

const (
	weightAudience   = 0.25
	weightPsych      = 0.30
	weightBrand      = 0.20
	weightConversion = 0.25
)

// base psychological weight per technique
var techniqueStrength = map[Technique]int{
	TechniqueSocialProof: 80,
	TechniqueScarcity:    75,
	TechniqueUrgency:     70,
	TechniqueReciprocity: 85,
	TechniqueAuthority:   75,
	TechniqueConsistency: 65,
}

var actionWords = []string{"예약", "신청", "방문", "체험", "문의", "지금", "바로"}

// ScoreVariant rates v against the channel it will be sent to
func ScoreVariant(v Variant, cfg ChannelConfig) Score {
	s := Score{
		AudienceMatch:       audienceMatch(v.Text, cfg.Keywords),
		PsychEffect:         psychEffect(v),
		BrandFit:            brandFit(v, cfg),
		ConversionPotential: conversionPotential(v, cfg),
	}
	total := weightAudience*float64(s.AudienceMatch) +
		weightPsych*float64(s.PsychEffect) +
		weightBrand*float64(s.BrandFit) +
		weightConversion*float64(s.ConversionPotential)
	s.Total = clamp(int(math.Round(total)))
	return s
}

func audienceMatch(text string, keywords []string) int {
	var considered, hits int
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		considered++
		if strings.Contains(text, k) {
			hits++
		}
	}
	if considered == 0 {
		return 50
	}
	return clamp(40 + 60*hits/considered)
}

func psychEffect(v Variant) int {
	score, ok := techniqueStrength[v.Technique]
	if !ok {
		score = 50
	}
	if strings.Contains(v.Text, hooks[v.Technique]) {
		score += 10
	}
	if v.Truncated {
		score -= 20
	}
	return clamp(score)
}

func brandFit(v Variant, cfg ChannelConfig) int {
	brand := strings.TrimSpace(cfg.BrandName)
	if brand == "" {
		return 50
	}
	score := 30
	if strings.Contains(v.Text, brand) {
		score += 50
	}
	if strings.HasPrefix(v.Text, "["+brand+"]") {
		score += 20
	}
	return clamp(score)
}

func conversionPotential(v Variant, cfg ChannelConfig) int {
	score := 40
	cta := strings.TrimSpace(cfg.CTA)
	if cta == "" {
		cta = defaultCTA
	}
	if strings.Contains(v.Text, cta) {
		score += 30
	}
	for _, w := range actionWords {
		if strings.Contains(v.Text, w) {
			score += 5
		}
	}

	// Shorter messages convert better once they fit the channel.
	if limit := cfg.MaxBytes(); limit > 0 && v.Bytes*2 <= limit {
		score += 10
	}
	return clamp(score)
}

func clamp(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 100:
		return 100
	}
	return n
}
