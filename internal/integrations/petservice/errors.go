package petservice

import "errors"

var (
	// ErrPetNotFound возвращается, когда питомец не найден
	ErrPetNotFound = errors.New("petservice client: pet not found")

	// ErrOwnerNotFound возвращается, когда владелец не найден
	ErrOwnerNotFound = errors.New("petservice client: owner not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("petservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("petservice client: invalid response")
)
