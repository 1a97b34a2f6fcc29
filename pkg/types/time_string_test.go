package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "hh:mm", input: "09:30", want: "09:30"},
		{name: "single digit hour", input: "9:05", want: "09:05"},
		{name: "with seconds", input: "18:00:00", want: "18:00"},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "bad minutes", input: "10:75", wantErr: true},
		{name: "past midnight", input: "24:30", wantErr: true},
		{name: "garbage", input: "ten", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("10:30").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:00"), got)

	got, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), got)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:01").IsAfter("10:00"))
	assert.True(t, TimeString("09:00").Equal("09:00"))
}

func TestTimeString_On(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	day := time.Date(2025, 11, 23, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("14:30").On(day, seoul)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 23, 14, 30, 0, 0, seoul), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("11:00:00")))
	assert.Equal(t, TimeString("11:00"), ts)

	require.NoError(t, ts.Scan("07:15"))
	assert.Equal(t, TimeString("07:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
