package domain

import "fmt"

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusConfirmed  AppointmentStatus = "confirmed"
	StatusInProgress AppointmentStatus = "in_progress"
	StatusCompleted  AppointmentStatus = "completed"
	StatusCancelled  AppointmentStatus = "cancelled"
)

// AllStatuses список всех допустимых статусов
var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// transitions таблица допустимых переходов статусов
// Прямая цепочка pending -> confirmed -> in_progress -> completed,
// плюс отмена из любого нетерминального статуса.
// completed и cancelled терминальны - из них переходов нет.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ParseStatus валидирует строку и возвращает AppointmentStatus
func ParseStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	for _, known := range AllStatuses {
		if status == known {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

// IsValid returns true if the status is one of the known statuses
func (s AppointmentStatus) IsValid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// IsTerminal returns true if no outbound transitions exist for the status
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition returns true if the transition from -> to is legal
func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from the given status in one step
// Для терминальных статусов возвращает пустой список
func NextStatuses(from AppointmentStatus) []AppointmentStatus {
	next := transitions[from]
	out := make([]AppointmentStatus, len(next))
	copy(out, next)
	return out
}
