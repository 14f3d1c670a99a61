package get_schedule

import "time"

// Request модель запроса календарной сетки
type Request struct {
	// Первый день окна. Нулевое значение - сетка от текущего дня
	StartDate time.Time
	// Привилегированный режим: ячейки дополнительно содержат
	// питомца и клиента занявшей их записи (админский календарь)
	Privileged bool
}

// Response календарная сетка занятости
type Response struct {
	Days  []time.Time // Даты колонок окна
	Hours []int       // Часы строк сетки
	// Ячейки, индексация Cells[dayIdx][hourIdx]
	Cells [][]Cell
}

// Cell одна ячейка сетки: часовой слот одного дня
type Cell struct {
	Start time.Time
	End   time.Time
	Busy  bool
	// Данные занявшей записи, только в привилегированном режиме
	Occupant *Occupant
}

// Occupant идентификация записи, занявшей ячейку
type Occupant struct {
	AppointmentID int64
	PetName       string
	ClientID      int64
	Status        string
}
