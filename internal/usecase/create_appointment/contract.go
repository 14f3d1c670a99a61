package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
	"github.com/m04kA/PetSpa-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/PetSpa-BookingService/internal/integrations/petservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, app *domain.Appointment) (*domain.Appointment, error)
	ListInRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
}

// PetServiceClient интерфейс клиента для PetService
type PetServiceClient interface {
	GetPet(ctx context.Context, petID int64) (*petservice.Pet, error)
}

// CatalogServiceClient интерфейс клиента для каталога услуг
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
