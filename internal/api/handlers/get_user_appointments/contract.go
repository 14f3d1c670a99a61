package get_user_appointments

import (
	"context"

	"github.com/m04kA/PetSpa-BookingService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
