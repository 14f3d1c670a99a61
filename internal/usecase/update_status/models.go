package update_status

import "time"

// Request модель запроса на перевод записи в новый статус
type Request struct {
	AppointmentID int64  // ID записи
	TargetStatus  string // Целевой статус
}

// Response модель ответа с обновленной записью
type Response struct {
	ID        int64     // ID записи
	PetID     int64     // ID питомца
	ClientID  int64     // ID клиента
	ServiceID int64     // ID услуги
	StartTime time.Time // Начало записи
	EndTime   time.Time // Конец записи
	Status    string    // Новый статус записи

	PetName      string  // Имя питомца
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	Notes        *string // Заметки

	// Допустимые статусы из нового состояния
	NextStatuses []string

	UpdatedAt time.Time // Время обновления
}
