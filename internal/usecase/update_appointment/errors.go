package update_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrInvalidStatus возвращается при неизвестном значении статуса
	ErrInvalidStatus = errors.New("update_appointment: invalid status value")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("update_appointment: service not found")

	// ErrSlotConflict возвращается, когда новый интервал пересекается
	// с другой активной записью
	ErrSlotConflict = errors.New("update_appointment: time slot conflicts with an existing appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
