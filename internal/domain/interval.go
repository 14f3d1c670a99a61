package domain

import "time"

// Interval полуоткрытый временной интервал [Start, End)
// Единственная точка определения пересечения интервалов в сервисе:
// и календарная сетка, и проверка коллизий при создании/редактировании
// записи используют Overlaps. Расхождение этих проверок - класс багов,
// которого мы избегаем.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval создает интервал из начала и длительности в минутах
func NewInterval(start time.Time, durationMinutes int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

// IsValid returns true if End is strictly after Start
func (i Interval) IsValid() bool {
	return i.End.After(i.Start)
}

// Duration возвращает длительность интервала
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps returns true if the two half-open intervals share any instant
// Запись, заканчивающаяся ровно в момент начала другой, НЕ пересекается с ней:
// [10:00, 11:00) и [11:00, 12:00) - соседние, не конфликтующие интервалы.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains returns true if t lies within the half-open interval
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}
