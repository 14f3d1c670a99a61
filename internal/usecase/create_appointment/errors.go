package create_appointment

import "errors"

var (
	// ErrPetNotFound возвращается, когда питомец не найден
	ErrPetNotFound = errors.New("create_appointment: pet not found")

	// ErrPetNotOwned возвращается, когда питомец принадлежит другому клиенту
	ErrPetNotOwned = errors.New("create_appointment: pet belongs to another client")

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrInvalidDate возвращается, когда время записи в прошлом
	ErrInvalidDate = errors.New("create_appointment: appointment time is in the past")

	// ErrClosedDay возвращается при попытке записаться на нерабочий день
	ErrClosedDay = errors.New("create_appointment: salon is closed on this day")

	// ErrOutsideWorkingHours возвращается, когда интервал выходит за рабочие часы
	ErrOutsideWorkingHours = errors.New("create_appointment: appointment is outside working hours")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующей
	// неотменённой записью
	ErrSlotConflict = errors.New("create_appointment: time slot conflicts with an existing appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
