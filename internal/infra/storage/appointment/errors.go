package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotConflict возвращается, когда интервал записи пересекается с существующей
	// Источник - exclusion constraint в PostgreSQL, финальная гарантия отсутствия
	// пересечений при гонке двух сессий
	ErrSlotConflict = errors.New("appointment.repository: appointment interval conflicts with an existing one")

	// ErrStatusChanged возвращается, когда статус записи успел измениться
	// между чтением и записью и условное обновление не затронуло строк
	ErrStatusChanged = errors.New("appointment.repository: appointment status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
