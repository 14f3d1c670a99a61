package domain

import "time"

// Appointment represents a grooming appointment in the system
// Записи никогда не удаляются физически - история сохраняется
type Appointment struct {
	ID         int64
	PetID      int64
	ClientID   int64
	EmployeeID *int64 // Назначенный сотрудник (опционально)
	ServiceID  int64
	StartTime  time.Time
	EndTime    time.Time
	Status     AppointmentStatus

	// Denormalized data for history
	PetName      string
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the appointment's [start, end) interval
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartTime, End: a.EndTime}
}

// IsActive returns true if the appointment occupies calendar time
// Отменённые записи не занимают слоты
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsTerminal returns true if no further status transition is allowed
func (a *Appointment) IsTerminal() bool {
	return a.Status.IsTerminal()
}

// AppointmentsFilter фильтр для получения записей (админские списки)
type AppointmentsFilter struct {
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	EmployeeID      *int64             // Фильтр по сотруднику (опционально)
	IncludeInactive bool               // Включать ли отменённые записи
}
