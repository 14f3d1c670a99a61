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

	_, err = NewTimeStringFromString("9:30am")
	require.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("25:00")
	require.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Hour(t *testing.T) {
	ts, err := NewTimeStringFromString("18:00")
	require.NoError(t, err)

	hour, err := ts.Hour()
	require.NoError(t, err)
	assert.Equal(t, 18, hour)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)

	later, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, "10:15", later.String())

	// Переход через полночь запрещён
	_, err = ts.AddMinutes(15 * 60)
	require.Error(t, err)
}

func TestTimeString_Comparison(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("17:00")

	assert.True(t, a.IsBefore(b))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
}

func TestTimeString_At(t *testing.T) {
	ts, err := NewTimeStringFromString("10:30")
	require.NoError(t, err)

	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	at, err := ts.At(day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 10, 30, 0, 0, time.UTC), at)
}

func TestTimeString_SQLRoundTrip(t *testing.T) {
	ts, err := NewTimeStringFromString("14:00")
	require.NoError(t, err)

	value, err := ts.Value()
	require.NoError(t, err)

	var scanned TimeString
	// Postgres отдаёт TIME как "HH:MM:SS"
	require.NoError(t, scanned.Scan("14:00:00"))
	assert.Equal(t, ts, scanned)
	assert.Equal(t, "14:00", value)
}
