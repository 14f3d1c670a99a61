package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.PetID <= 0 {
		return fmt.Errorf("%w: petID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateInterval проверяет интервал записи против календарных правил салона
func validateInterval(interval domain.Interval, cal domain.Calendar, now time.Time) error {
	if !interval.IsValid() {
		return fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	if interval.Start.Before(now) {
		return ErrInvalidDate
	}

	if !cal.IsWorkingDay(interval.Start) {
		return ErrClosedDay
	}

	if !cal.WithinWorkingHours(interval) {
		return ErrOutsideWorkingHours
	}

	return nil
}

// findConflict ищет первую активную запись, пересекающуюся с интервалом
// Полуоткрытая семантика из domain.Interval: запись, заканчивающаяся ровно
// в момент начала новой, не конфликтует
func findConflict(interval domain.Interval, appointments []*domain.Appointment) *domain.Appointment {
	for _, app := range appointments {
		if !app.IsActive() {
			continue
		}
		if interval.Overlaps(app.Interval()) {
			return app
		}
	}
	return nil
}

// dayBounds возвращает границы суток, в которые попадает t
func dayBounds(t time.Time) (time.Time, time.Time) {
	dayStart := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return dayStart, dayStart.AddDate(0, 0, 1)
}
