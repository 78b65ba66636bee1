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
		{name: "valid morning", input: "09:00", want: "09:00"},
		{name: "valid afternoon", input: "16:00", want: "16:00"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "no leading zero", input: "9:00", wantErr: true},
		{name: "no minute padding", input: "09:0", wantErr: true},
		{name: "trailing seconds", input: "09:00:00", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "out of range minute", input: "10:61", wantErr: true},
		{name: "garbage", input: "ten o'clock", wantErr: true},
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
	ts := TimeString("10:30")

	got, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), got)

	got, err = ts.AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), got)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("16:00").IsAfter("15:00"))
	assert.False(t, TimeString("16:00").IsAfter("16:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("13:00:00"))
	assert.Equal(t, TimeString("13:00"), ts)

	require.NoError(t, ts.Scan([]byte("14:00")))
	assert.Equal(t, TimeString("14:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("15:00"), ts)

	assert.Error(t, ts.Scan(42))
}
