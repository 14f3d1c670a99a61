package flow

import "errors"

var (
	// ErrSessionNotFound возвращается, когда диалоговая сессия не найдена
	// или уже истекла
	ErrSessionNotFound = errors.New("flow: session not found")

	// ErrSessionFinished возвращается при сообщении в завершённую сессию
	ErrSessionFinished = errors.New("flow: session is finished")

	// ErrSessionAccessDenied возвращается при обращении к чужой сессии
	ErrSessionAccessDenied = errors.New("flow: session belongs to another user")

	// ErrInternal возвращается при внутренних ошибках движка диалога
	ErrInternal = errors.New("flow: internal error")
)
