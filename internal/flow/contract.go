package flow

import (
	"context"

	"github.com/m04kA/PetSpa-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/PetSpa-BookingService/internal/integrations/petservice"
	"github.com/m04kA/PetSpa-BookingService/internal/usecase/create_appointment"
)

// PetServiceClient интерфейс клиента для PetService
type PetServiceClient interface {
	ListPetsForOwner(ctx context.Context, ownerID int64) ([]petservice.Pet, error)
	CreatePet(ctx context.Context, req *petservice.CreatePetRequest) (*petservice.Pet, error)
}

// CatalogServiceClient интерфейс клиента для каталога услуг
type CatalogServiceClient interface {
	ListServices(ctx context.Context) ([]catalogservice.Service, error)
}

// AppointmentCreator интерфейс создания записи
// Единственная точка коммита диалога: подтверждение сводки вызывает его
// ровно один раз
type AppointmentCreator interface {
	Execute(ctx context.Context, req *create_appointment.Request) (*create_appointment.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
