package update_status

import (
	"time"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
	updateStatus "github.com/m04kA/PetSpa-BookingService/internal/usecase/update_status"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID           int64    `json:"id"`
	PetID        int64    `json:"petId"`
	ClientID     int64    `json:"clientId"`
	ServiceID    int64    `json:"serviceId"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	Status       string   `json:"status"`
	PetName      string   `json:"petName"`
	ServiceName  string   `json:"serviceName"`
	ServicePrice float64  `json:"servicePrice"`
	Notes        *string  `json:"notes,omitempty"`
	NextStatuses []string `json:"nextStatuses"`
	UpdatedAt    string   `json:"updatedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateStatus.Response) *AppointmentResponse {
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
		NextStatuses: resp.NextStatuses,
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
