package domain

import (
	"time"

	"github.com/m04kA/PetSpa-BookingService/pkg/types"
)

// Calendar правила календарной сетки салона
// Салон обслуживает одну запись в каждый часовой слот (одна рабочая линия),
// поэтому календарь общий для всех записей.
type Calendar struct {
	Days      int              // Размер окна календаря в днях
	OpenTime  types.TimeString // Начало рабочего дня
	CloseTime types.TimeString // Конец рабочего дня
}

// NewCalendar создает календарь с валидацией границ рабочего дня
func NewCalendar(days int, openTime, closeTime string) (Calendar, error) {
	open, err := types.NewTimeStringFromString(openTime)
	if err != nil {
		return Calendar{}, err
	}

	closeAt, err := types.NewTimeStringFromString(closeTime)
	if err != nil {
		return Calendar{}, err
	}

	if days <= 0 {
		days = DefaultCalendarDays
	}

	return Calendar{Days: days, OpenTime: open, CloseTime: closeAt}, nil
}

// Hours возвращает список часов, в которые начинаются слоты
// Последний слот начинается за час до закрытия: при работе 09:00-18:00
// слоты начинаются в 9, 10, ..., 17.
func (c Calendar) Hours() []int {
	openHour, err := c.OpenTime.Hour()
	if err != nil {
		openHour = DefaultOpenHour
	}

	closeHour, err := c.CloseTime.Hour()
	if err != nil {
		closeHour = DefaultCloseHour
	}

	hours := make([]int, 0, closeHour-openHour)
	for h := openHour; h < closeHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// WindowDays возвращает даты окна календаря начиная с anchor
// Воскресенье салон не работает: выпавшее на окно воскресенье
// сдвигается на следующий день.
func (c Calendar) WindowDays(anchor time.Time) []time.Time {
	days := make([]time.Time, 0, c.Days)

	for i := 0; i < c.Days; i++ {
		d := anchor.AddDate(0, 0, i)
		if d.Weekday() == time.Sunday {
			d = d.AddDate(0, 0, 1)
		}
		days = append(days, time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()))
	}

	return days
}

// SlotInterval возвращает интервал часового слота [day@hour:00, day@hour+1:00)
func SlotInterval(day time.Time, hour int) Interval {
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
	return Interval{Start: start, End: start.Add(time.Hour)}
}

// WithinWorkingHours проверяет, что интервал лежит внутри рабочего дня
func (c Calendar) WithinWorkingHours(i Interval) bool {
	open, err := c.OpenTime.At(i.Start)
	if err != nil {
		return false
	}

	closeAt, err := c.CloseTime.At(i.Start)
	if err != nil {
		return false
	}

	if i.Start.Before(open) {
		return false
	}

	// Запись должна закончиться не позже закрытия того же дня
	return !i.End.After(closeAt)
}

// IsWorkingDay возвращает false для воскресенья
func (c Calendar) IsWorkingDay(day time.Time) bool {
	return day.Weekday() != time.Sunday
}
