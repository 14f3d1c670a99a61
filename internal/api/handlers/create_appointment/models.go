package create_appointment

import (
	"time"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
	createAppointment "github.com/m04kA/PetSpa-BookingService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PetID     int64   `json:"petId"`
	ServiceID int64   `json:"serviceId"`
	StartTime string  `json:"startTime"` // "2025-10-15 10:00"
	Notes     *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID           int64   `json:"id"`
	PetID        int64   `json:"petId"`
	ClientID     int64   `json:"clientId"`
	ServiceID    int64   `json:"serviceId"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	PetName      string  `json:"petName"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*createAppointment.Request, error) {
	startTime, err := time.Parse(domain.DateTimeFormat, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:  clientID,
		PetID:     r.PetID,
		ServiceID: r.ServiceID,
		StartTime: startTime,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:           resp.ID,
		PetID:        resp.PetID,
		ClientID:     resp.ClientID,
		ServiceID:    resp.ServiceID,
		StartTime:    resp.StartTime.Format(domain.DateTimeFormat),
		EndTime:      resp.EndTime.Format(domain.DateTimeFormat),
		Status:       resp.Status,
		PetName:      resp.PetName,
		ServiceName:  resp.ServiceName,
		ServicePrice: resp.ServicePrice,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
