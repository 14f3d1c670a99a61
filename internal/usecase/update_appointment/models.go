package update_appointment

import "time"

// Request модель запроса на пересмотр записи администратором
// nil-поля остаются без изменений
type Request struct {
	AppointmentID int64      // ID записи
	ServiceID     *int64     // Новая услуга (пересчитывает длительность и цену)
	StartTime     *time.Time // Новое начало записи
	EmployeeID    *int64     // Назначенный сотрудник
	Status        *string    // Новый статус, выставляется напрямую без цепочки переходов
	Notes         *string    // Новые заметки
}

// Response модель ответа с обновленной записью
type Response struct {
	ID         int64     // ID записи
	PetID      int64     // ID питомца
	ClientID   int64     // ID клиента
	EmployeeID *int64    // ID сотрудника
	ServiceID  int64     // ID услуги
	StartTime  time.Time // Начало записи
	EndTime    time.Time // Конец записи
	Status     string    // Статус записи

	PetName      string  // Имя питомца
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	Notes        *string // Заметки

	UpdatedAt time.Time // Время обновления
}
