package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/PetSpa-BookingService/internal/infra/storage/appointment"
	catalogClient "github.com/m04kA/PetSpa-BookingService/internal/integrations/catalogservice"
	petClient "github.com/m04kA/PetSpa-BookingService/internal/integrations/petservice"
)

// UseCase use case для создания записи на груминг
// Объединяет проверку коллизий (advisory) и коммит: авторитетная гарантия
// отсутствия пересечений остаётся за exclusion constraint в хранилище
type UseCase struct {
	appointmentRepo AppointmentRepository
	petClient       PetServiceClient
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	calendar        domain.Calendar
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	petClient PetServiceClient,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	calendar domain.Calendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		petClient:       petClient,
		catalogClient:   catalogClient,
		txManager:       txManager,
		calendar:        calendar,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию: проверка пересечений и вставка атомарны
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, pet=%d, service=%d, start=%s",
		req.ClientID, req.PetID, req.ServiceID, req.StartTime.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем питомца и проверяем владельца
	pet, err := uc.petClient.GetPet(ctx, req.PetID)
	if err != nil {
		if errors.Is(err, petClient.ErrPetNotFound) {
			uc.logger.Warn("CreateAppointment: pet id=%d not found", req.PetID)
			return nil, ErrPetNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get pet id=%d: %v", req.PetID, err)
		return nil, fmt.Errorf("%w: failed to get pet: %v", ErrInternal, err)
	}

	if pet.OwnerID != req.ClientID {
		uc.logger.Warn("CreateAppointment: pet id=%d does not belong to client id=%d", req.PetID, req.ClientID)
		return nil, ErrPetNotOwned
	}

	// 3. Получаем услугу - она фиксирует длительность и цену
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.Active {
		uc.logger.Warn("CreateAppointment: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Строим интервал записи: end = start + длительность услуги
	interval := domain.NewInterval(req.StartTime, service.DurationMinutes)

	// 5. Валидация интервала против календаря салона
	if err := validateInterval(interval, uc.calendar, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateAppointment: interval validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 6. Проверка коллизий и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем все неотменённые записи на сутки записи (FOR UPDATE)
		dayStart, dayEnd := dayBounds(interval.Start)
		existing, err := uc.appointmentRepo.ListInRange(txCtx, dayStart, dayEnd)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		// 6.2. Advisory-проверка пересечения
		if conflict := findConflict(interval, existing); conflict != nil {
			uc.logger.Warn("CreateAppointment: slot conflict with appointment id=%d (%s - %s)",
				conflict.ID,
				conflict.StartTime.Format(domain.DateTimeFormat),
				conflict.EndTime.Format(domain.TimeFormat))
			return ErrSlotConflict
		}

		// 6.3. Создаем запись: клиентские брони всегда начинают жизнь в pending
		app := &domain.Appointment{
			PetID:     req.PetID,
			ClientID:  req.ClientID,
			ServiceID: req.ServiceID,
			StartTime: interval.Start,
			EndTime:   interval.End,
			Status:    domain.StatusPending,
			// Денормализация данных питомца и услуги
			PetName:      pet.Name,
			ServiceName:  service.Name,
			ServicePrice: service.Price,
			Notes:        req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, app)
		if err != nil {
			// Проигрыш гонки: constraint в БД отклонил вставку уже после
			// advisory-проверки. Для вызывающего это тот же конфликт слота.
			if errors.Is(err, appointmentRepo.ErrSlotConflict) {
				uc.logger.Warn("CreateAppointment: storage rejected overlapping insert (lost race)")
				return ErrSlotConflict
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:           result.ID,
		PetID:        result.PetID,
		ClientID:     result.ClientID,
		ServiceID:    result.ServiceID,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		Status:       string(result.Status),
		PetName:      result.PetName,
		ServiceName:  result.ServiceName,
		ServicePrice: result.ServicePrice,
		Notes:        result.Notes,
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}
