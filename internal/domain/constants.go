package domain

// Default calendar values
// Окно в 6 дней и рабочий день 09:00-18:00 - режим работы салона
const (
	DefaultCalendarDays = 6
	DefaultOpenHour     = 9
	DefaultCloseHour    = 18
)

// Business validation constants
const (
	MinServiceDurationMinutes = 15
	MaxServiceDurationMinutes = 480 // 8 часов
	MaxNotesLength            = 500
)

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04" // YYYY-MM-DD HH:MM, ввод времени записи
)
