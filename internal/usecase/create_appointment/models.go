package create_appointment

import "time"

// Request модель запроса на создание записи
type Request struct {
	ClientID  int64     // ID клиента (из заголовка аутентификации)
	PetID     int64     // ID питомца
	ServiceID int64     // ID услуги (фиксирует длительность и цену)
	StartTime time.Time // Начало записи
	Notes     *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID        int64     // ID созданной записи
	PetID     int64     // ID питомца
	ClientID  int64     // ID клиента
	ServiceID int64     // ID услуги
	StartTime time.Time // Начало записи
	EndTime   time.Time // Конец записи (start + длительность услуги)
	Status    string    // Статус записи (всегда pending при создании)

	// Денормализованные данные
	PetName      string  // Имя питомца
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
