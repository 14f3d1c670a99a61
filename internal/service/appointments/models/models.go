package models

import (
	"errors"
	"time"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// GetUserAppointmentsRequest запрос истории записей клиента
type GetUserAppointmentsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// ListAppointmentsRequest запрос списка записей с фильтрацией (админка)
type ListAppointmentsRequest struct {
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	EmployeeID      *int64     `json:"employeeId,omitempty"`      // Фильтр по сотруднику (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		EmployeeID:      r.EmployeeID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID         int64  `json:"id"`
	PetID      int64  `json:"petId"`
	ClientID   int64  `json:"clientId"`
	EmployeeID *int64 `json:"employeeId,omitempty"`
	ServiceID  int64  `json:"serviceId"`
	StartTime  string `json:"startTime"` // "2025-10-15 10:00"
	EndTime    string `json:"endTime"`
	Status     string `json:"status"`

	// Денормализованные данные
	PetName      string  `json:"petName"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	Notes        *string `json:"notes,omitempty"`

	// Допустимые переходы из текущего статуса (для кнопок админки)
	NextStatuses []string `json:"nextStatuses"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// StatusSummaryResponse сводка количества записей по статусам
type StatusSummaryResponse struct {
	Counts map[string]int `json:"counts"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	next := domain.NextStatuses(a.Status)
	nextStrs := make([]string, 0, len(next))
	for _, s := range next {
		nextStrs = append(nextStrs, string(s))
	}

	return &AppointmentResponse{
		ID:           a.ID,
		PetID:        a.PetID,
		ClientID:     a.ClientID,
		EmployeeID:   a.EmployeeID,
		ServiceID:    a.ServiceID,
		StartTime:    a.StartTime.Format(domain.DateTimeFormat),
		EndTime:      a.EndTime.Format(domain.DateTimeFormat),
		Status:       string(a.Status),
		PetName:      a.PetName,
		ServiceName:  a.ServiceName,
		ServicePrice: a.ServicePrice,
		Notes:        a.Notes,
		NextStatuses: nextStrs,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(apps []*domain.Appointment) *AppointmentListResponse {
	out := make([]AppointmentResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, *FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: out}
}

// ToDomainStatus конвертирует строку в domain статус
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status, err := domain.ParseStatus(s)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return status, nil
}
