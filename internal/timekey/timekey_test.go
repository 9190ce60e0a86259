package timekey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey(t *testing.T) {
	d := time.Date(2024, time.March, 7, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-07", DateKey(d))
}

func TestDateKey_ZeroPadding(t *testing.T) {
	d := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01", DateKey(d))
}

func TestDateKey_UsesLocalCalendarDay(t *testing.T) {
	// 23:30 on the 7th in UTC+13 is already the 7th locally even though the
	// UTC instant is still the 7th 10:30; conversely 00:30 local on the 8th
	// is 11:30 UTC on the 7th. The key must follow the local day.
	zone := time.FixedZone("UTC+13", 13*60*60)

	lateNight := time.Date(2024, time.June, 8, 0, 30, 0, 0, zone)
	require.Equal(t, time.June, lateNight.UTC().Month())
	require.Equal(t, 7, lateNight.UTC().Day())

	assert.Equal(t, "2024-06-08", DateKey(lateNight))

	west := time.FixedZone("UTC-11", -11*60*60)
	earlyMorning := time.Date(2024, time.June, 7, 23, 15, 0, 0, west)
	require.Equal(t, 8, earlyMorning.UTC().Day())

	assert.Equal(t, "2024-06-07", DateKey(earlyMorning))
}

func TestToMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:00", 480, false},
		{"14:00", 840, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:00", 0, true},
		{"09:5", 0, true},
		{"0900", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
		{"09:00:00", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ToMinutes(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("08:30"))
	assert.False(t, Valid("8:30"))
	assert.False(t, Valid("25:00"))
}
