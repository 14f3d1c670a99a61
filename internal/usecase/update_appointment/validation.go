package update_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointment id must be positive", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.EmployeeID != nil && *req.EmployeeID <= 0 {
		return fmt.Errorf("%w: employeeID must be positive", ErrInvalidInput)
	}

	if req.StartTime != nil && req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime must not be zero", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// findConflict ищет первую активную запись, пересекающуюся с интервалом
// Запись excludeID пропускается: пересмотр не конфликтует сам с собой
func findConflict(interval domain.Interval, appointments []*domain.Appointment, excludeID int64) *domain.Appointment {
	for _, app := range appointments {
		if app.ID == excludeID || !app.IsActive() {
			continue
		}
		if interval.Overlaps(app.Interval()) {
			return app
		}
	}
	return nil
}

// listBounds возвращает границы суток, накрывающие интервал целиком
// Перенос через полночь захватывает и соседей следующего дня
func listBounds(interval domain.Interval) (time.Time, time.Time) {
	s, e := interval.Start, interval.End
	from := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, s.Location())
	to := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, e.Location()).AddDate(0, 0, 1)
	return from, to
}
