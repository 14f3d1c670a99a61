package list_appointments

import (
	"context"

	"github.com/m04kA/PetSpa-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	ListAppointments(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error)
	StatusSummary(ctx context.Context) (*models.StatusSummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
