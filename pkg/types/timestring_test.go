package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"10:00", false},
		{"22:00", false},
		{"00:00", false},
		{"23:59", false},
		{"9:00", true},
		{"24:00", true},
		{"10:60", true},
		{"10-00", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("10:45").AddMinutes(75)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:00"), got)

	_, err = TimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:30").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("22:00").IsAfter("21:59"))
}

func TestTimeString_OnDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	day := time.Date(2025, 3, 14, 17, 45, 0, 0, loc)

	got, err := TimeString("10:30").OnDate(day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 10, 30, 0, 0, loc), got)
}
