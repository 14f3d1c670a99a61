package update_status

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_status: appointment not found")

	// ErrInvalidStatus возвращается при неизвестном целевом статусе
	ErrInvalidStatus = errors.New("update_status: unknown status")

	// ErrInvalidTransition возвращается, когда переход не разрешён
	// цепочкой жизненного цикла записи
	ErrInvalidTransition = errors.New("update_status: status transition is not allowed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_status: internal error")
)
