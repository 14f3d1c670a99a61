package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCalendar(t *testing.T) Calendar {
	t.Helper()

	cal, err := NewCalendar(6, "09:00", "18:00")
	require.NoError(t, err)
	return cal
}

func TestCalendar_Hours(t *testing.T) {
	cal := testCalendar(t)

	assert.Equal(t, []int{9, 10, 11, 12, 13, 14, 15, 16, 17}, cal.Hours())
}

func TestCalendar_WindowDays_SkipsSunday(t *testing.T) {
	cal := testCalendar(t)

	// 2024-06-07 - пятница; воскресенье 2024-06-09 попадает в окно
	anchor := time.Date(2024, 6, 7, 15, 30, 0, 0, time.UTC)
	days := cal.WindowDays(anchor)

	require.Len(t, days, 6)
	for _, d := range days {
		assert.NotEqual(t, time.Sunday, d.Weekday())
		// Даты нормализованы к полуночи
		assert.Equal(t, 0, d.Hour())
	}

	// Воскресенье сдвинуто на следующий день (понедельник 10-е)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), days[2])
}

func TestCalendar_WindowDays_Deterministic(t *testing.T) {
	cal := testCalendar(t)
	anchor := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, cal.WindowDays(anchor), cal.WindowDays(anchor))
}

func TestSlotInterval(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	slot := SlotInterval(day, 10)

	assert.Equal(t, time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC), slot.Start)
	assert.Equal(t, time.Date(2024, 6, 10, 11, 0, 0, 0, time.UTC), slot.End)
}

func TestCalendar_WithinWorkingHours(t *testing.T) {
	cal := testCalendar(t)
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	inside := Interval{
		Start: day.Add(10 * time.Hour),
		End:   day.Add(11 * time.Hour),
	}
	assert.True(t, cal.WithinWorkingHours(inside))

	// Последний слот дня упирается ровно в закрытие
	lastSlot := Interval{
		Start: day.Add(17 * time.Hour),
		End:   day.Add(18 * time.Hour),
	}
	assert.True(t, cal.WithinWorkingHours(lastSlot))

	beforeOpen := Interval{
		Start: day.Add(8 * time.Hour),
		End:   day.Add(9 * time.Hour),
	}
	assert.False(t, cal.WithinWorkingHours(beforeOpen))

	pastClose := Interval{
		Start: day.Add(17*time.Hour + 30*time.Minute),
		End:   day.Add(18*time.Hour + 30*time.Minute),
	}
	assert.False(t, cal.WithinWorkingHours(pastClose))
}

func TestCalendar_IsWorkingDay(t *testing.T) {
	cal := testCalendar(t)

	sunday := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	assert.False(t, cal.IsWorkingDay(sunday))
	assert.True(t, cal.IsWorkingDay(monday))
}

func TestNewCalendar_InvalidBounds(t *testing.T) {
	_, err := NewCalendar(6, "nine", "18:00")
	assert.Error(t, err)

	_, err = NewCalendar(6, "09:00", "25:00")
	assert.Error(t, err)
}
