package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRecipients(t *testing.T) {
	valid, invalid := NormalizeRecipients([]string{
		"010-1234-5678",
		"01012345678",
		"010 9999 0000",
		"02-123-4567",
		"",
		"0101234",
	})

	assert.Equal(t, []string{"01012345678", "01099990000"}, valid)
	assert.Equal(t, []string{"02-123-4567", "0101234"}, invalid)
}

func TestInterval_Overlaps(t *testing.T) {
	slot := Interval{Start: 11*60 + 30, End: 12 * 60}

	assert.True(t, slot.Overlaps(Interval{Start: 11*60 + 20, End: 11*60 + 40}))
	assert.False(t, slot.Overlaps(Interval{Start: 11 * 60, End: 11*60 + 30}), "touching at start")
	assert.False(t, slot.Overlaps(Interval{Start: 12 * 60, End: 12*60 + 30}), "touching at end")
}
