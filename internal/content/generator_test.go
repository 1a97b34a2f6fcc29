package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whalechillz/mas-win-sub025/internal/domain"
)

func TestGenerate_OneVariantPerTechnique(t *testing.T) {
	cfg := ChannelConfig{Channel: ChannelLMS, BrandName: "MASSGOO", CTA: "지금 시타 예약하세요!"}

	got := Generate("신형 드라이버 입고", cfg)

	require.Len(t, got, len(Techniques))
	for i, v := range got {
		assert.Equal(t, Techniques[i], v.Technique)
		assert.True(t, strings.HasPrefix(v.Text, "[MASSGOO]"))
		assert.Contains(t, v.Text, "신형 드라이버 입고")
		assert.Contains(t, v.Text, "지금 시타 예약하세요!")
		assert.False(t, v.Truncated)
		assert.Equal(t, domain.MessageBytes(v.Text), v.Bytes)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := ChannelConfig{Channel: ChannelKakao, BrandName: "MASSGOO"}
	assert.Equal(t, Generate("seed", cfg), Generate("seed", cfg))
}

func TestGenerate_TruncatesToChannelLimit(t *testing.T) {
	cfg := ChannelConfig{Channel: ChannelSMS, BrandName: "MASSGOO"}

	got := Generate(strings.Repeat("골프", 100), cfg)

	for _, v := range got {
		assert.LessOrEqual(t, v.Bytes, domain.SMSMaxBytes)
		assert.True(t, v.Truncated)
		assert.True(t, utf8Valid(v.Text))
	}
}

func TestGenerate_DefaultCTA(t *testing.T) {
	got := Generate("", ChannelConfig{Channel: ChannelLMS})
	for _, v := range got {
		assert.True(t, strings.HasSuffix(v.Text, defaultCTA))
	}
}

func TestScoreVariant(t *testing.T) {
	cfg := ChannelConfig{
		Channel:   ChannelLMS,
		BrandName: "MASSGOO",
		CTA:       "지금 시타 예약하세요!",
		Keywords:  []string{"드라이버", "비거리"},
	}
	variants := Generate("비거리 늘려주는 드라이버", cfg)

	for _, v := range variants {
		s := ScoreVariant(v, cfg)
		assert.Equal(t, 100, s.AudienceMatch)
		assert.Equal(t, 100, s.BrandFit)
		assert.GreaterOrEqual(t, s.Total, 0)
		assert.LessOrEqual(t, s.Total, 100)
	}

	reciprocity := ScoreVariant(variants[3], cfg)
	consistency := ScoreVariant(variants[5], cfg)
	assert.Greater(t, reciprocity.PsychEffect, consistency.PsychEffect)
}

func TestScoreVariant_PenalizesTruncation(t *testing.T) {
	cfg := ChannelConfig{Channel: ChannelSMS, BrandName: "MASSGOO"}
	short := Generate("", cfg)[0]
	long := Generate(strings.Repeat("골프", 100), cfg)[0]

	assert.Greater(t, ScoreVariant(short, cfg).PsychEffect, ScoreVariant(long, cfg).PsychEffect)
}

func TestScoreVariant_NoBrandNoKeywords(t *testing.T) {
	s := ScoreVariant(Variant{Technique: TechniqueUrgency, Text: "hello"}, ChannelConfig{Channel: ChannelLMS})
	assert.Equal(t, 50, s.AudienceMatch)
	assert.Equal(t, 50, s.BrandFit)
}

func TestParseChannel(t *testing.T) {
	ch, ok := ParseChannel(" SMS ")
	assert.True(t, ok)
	assert.Equal(t, ChannelSMS, ch)

	ch, ok = ParseChannel("mms")
	assert.True(t, ok)
	assert.Equal(t, ChannelLMS, ch)

	_, ok = ParseChannel("fax")
	assert.False(t, ok)
}

func utf8Valid(s string) bool {
	return strings.ToValidUTF8(s, "�") == s
}
