package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, raw := range []string{"", "9:30:00", "25:00", "09-30", "noon"} {
		_, err := NewTimeStringFromString(raw)
		assert.ErrorIs(t, err, ErrInvalidTimeString, raw)
	}
}

func TestTimeString_Minutes(t *testing.T) {
	ts := TimeString("10:45")
	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 10*60+45, minutes)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("09:00")

	shifted, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), shifted)

	back, err := ts.AddMinutes(-60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("08:00"), back)
}

func TestTimeString_Ordering(t *testing.T) {
	open := TimeString("09:00")
	close := TimeString("18:00")

	assert.True(t, open.IsBefore(close))
	assert.True(t, close.IsAfter(open))
	assert.False(t, open.IsAfter(open))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("12:00"))
	assert.Equal(t, TimeString("12:00"), ts)

	require.NoError(t, ts.Scan([]byte("13:15")))
	assert.Equal(t, TimeString("13:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
