package update_appointment

import (
	"context"
	"time"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
	"github.com/m04kA/PetSpa-BookingService/internal/integrations/catalogservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListInRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
	UpdateFull(ctx context.Context, app *domain.Appointment) error
}

// CatalogServiceClient интерфейс клиента для каталога услуг
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
