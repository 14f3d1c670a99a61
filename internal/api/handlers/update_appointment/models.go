package update_appointment

import (
	"time"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
	updateAppointment "github.com/m04kA/PetSpa-BookingService/internal/usecase/update_appointment"
)

// UpdateAppointmentRequest HTTP request model
// Отсутствующие поля остаются без изменений
type UpdateAppointmentRequest struct {
	ServiceID  *int64  `json:"serviceId,omitempty"`
	StartTime  *string `json:"startTime,omitempty"` // "2025-10-15 10:00"
	EmployeeID *int64  `json:"employeeId,omitempty"`
	Status     *string `json:"status,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID           int64   `json:"id"`
	PetID        int64   `json:"petId"`
	ClientID     int64   `json:"clientId"`
	EmployeeID   *int64  `json:"employeeId,omitempty"`
	ServiceID    int64   `json:"serviceId"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	PetName      string  `json:"petName"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	Notes        *string `json:"notes,omitempty"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*updateAppointment.Request, error) {
	req := &updateAppointment.Request{
		AppointmentID: appointmentID,
		ServiceID:     r.ServiceID,
		EmployeeID:    r.EmployeeID,
		Status:        r.Status,
		Notes:         r.Notes,
	}

	if r.StartTime != nil {
		startTime, err := time.Parse(domain.DateTimeFormat, *r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           resp.ID,
		PetID:        resp.PetID,
		ClientID:     resp.ClientID,
		EmployeeID:   resp.EmployeeID,
		ServiceID:    resp.ServiceID,
		StartTime:    resp.StartTime.Format(domain.DateTimeFormat),
		EndTime:      resp.EndTime.Format(domain.DateTimeFormat),
		Status:       resp.Status,
		PetName:      resp.PetName,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		Notes:        resp.Notes,
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
