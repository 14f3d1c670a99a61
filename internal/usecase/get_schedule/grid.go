package get_schedule

import (
	"time"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
)

// buildGrid строит сетку занятости: чистая функция от
// (окно, часы, набор записей) - детерминирована и идемпотентна
//
// Ячейка занята, если хотя бы одна неотменённая запись пересекает её
// часовой интервал. Отчитывается первое найденное пересечение; две
// пересекающиеся активные записи в одной ячейке - аномалия данных
// (нарушение инварианта хранилища), ячейка в этом случае всё равно
// занята, а аномалия логируется.
func buildGrid(days []time.Time, hours []int, appointments []*domain.Appointment, privileged bool, log Logger) [][]Cell {
	cells := make([][]Cell, len(days))

	for di, day := range days {
		cells[di] = make([]Cell, len(hours))

		for hi, hour := range hours {
			slot := domain.SlotInterval(day, hour)
			cell := Cell{Start: slot.Start, End: slot.End}

			matches := overlapping(slot, appointments)
			if len(matches) > 0 {
				cell.Busy = true

				if len(matches) > 1 {
					log.Warn("GetSchedule: data anomaly - %d active appointments overlap slot %s",
						len(matches), slot.Start.Format(domain.DateTimeFormat))
				}

				if privileged {
					first := matches[0]
					cell.Occupant = &Occupant{
						AppointmentID: first.ID,
						PetName:       first.PetName,
						ClientID:      first.ClientID,
						Status:        string(first.Status),
					}
				}
			}

			cells[di][hi] = cell
		}
	}

	return cells
}

// overlapping возвращает активные записи, пересекающие слот,
// в порядке обхода входного набора
func overlapping(slot domain.Interval, appointments []*domain.Appointment) []*domain.Appointment {
	matches := make([]*domain.Appointment, 0, 1)
	for _, app := range appointments {
		if !app.IsActive() {
			continue
		}
		if slot.Overlaps(app.Interval()) {
			matches = append(matches, app)
		}
	}
	return matches
}
