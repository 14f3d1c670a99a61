package update_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/PetSpa-BookingService/internal/infra/storage/appointment"
	catalogClient "github.com/m04kA/PetSpa-BookingService/internal/integrations/catalogservice"
)

// UseCase use case административного пересмотра записи
// Перенос времени проверяется только против нового интервала: запись,
// стоящая на своём старом месте, сама себе не мешает
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет пересмотр записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: appointment=%d", req.AppointmentID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 2. Чтение, пересчёт и запись в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		app, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.1. Статус выставляется напрямую, без цепочки переходов
		wasCancelled := app.Status == domain.StatusCancelled
		if req.Status != nil {
			status, err := domain.ParseStatus(*req.Status)
			if err != nil {
				uc.logger.Warn("UpdateAppointment: unknown status %q", *req.Status)
				return fmt.Errorf("%w: %q", ErrInvalidStatus, *req.Status)
			}
			app.Status = status
		}

		durationMinutes := int(app.EndTime.Sub(app.StartTime).Minutes())

		// 2.2. Смена услуги пересчитывает длительность, название и цену
		if req.ServiceID != nil && *req.ServiceID != app.ServiceID {
			service, err := uc.catalogClient.GetService(txCtx, *req.ServiceID)
			if err != nil {
				if errors.Is(err, catalogClient.ErrServiceNotFound) {
					uc.logger.Warn("UpdateAppointment: service id=%d not found", *req.ServiceID)
					return ErrServiceNotFound
				}
				uc.logger.Error("UpdateAppointment: failed to get service id=%d: %v", *req.ServiceID, err)
				return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
			}
			if !service.Active {
				uc.logger.Warn("UpdateAppointment: service id=%d is inactive", *req.ServiceID)
				return ErrServiceNotFound
			}

			app.ServiceID = service.ID
			app.ServiceName = service.Name
			app.ServicePrice = service.Price
			durationMinutes = service.DurationMinutes
		}

		// 2.3. Новый интервал: старт из запроса либо прежний,
		// конец всегда производен от длительности услуги
		start := app.StartTime
		if req.StartTime != nil {
			start = *req.StartTime
		}
		interval := domain.NewInterval(start, durationMinutes)
		if !interval.IsValid() {
			return fmt.Errorf("%w: end must be after start", ErrInvalidInput)
		}

		intervalChanged := !interval.Start.Equal(app.StartTime) || !interval.End.Equal(app.EndTime)
		revived := wasCancelled && app.Status != domain.StatusCancelled

		// 2.4. Проверка пересечений для нового интервала, сама запись исключается
		// Отменённая запись место не занимает: при возврате в активный статус
		// её интервал проверяется заново, при переводе в cancelled - не проверяется
		if (intervalChanged || revived) && app.Status != domain.StatusCancelled {
			from, to := listBounds(interval)
			existing, err := uc.appointmentRepo.ListInRange(txCtx, from, to)
			if err != nil {
				uc.logger.Error("UpdateAppointment: failed to list appointments: %v", err)
				return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
			}
			if conflict := findConflict(interval, existing, app.ID); conflict != nil {
				uc.logger.Warn("UpdateAppointment: new interval conflicts with appointment id=%d", conflict.ID)
				return ErrSlotConflict
			}
		}

		app.StartTime = interval.Start
		app.EndTime = interval.End

		if req.EmployeeID != nil {
			app.EmployeeID = req.EmployeeID
		}
		if req.Notes != nil {
			app.Notes = req.Notes
		}

		if err := uc.appointmentRepo.UpdateFull(txCtx, app); err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotConflict) {
				uc.logger.Warn("UpdateAppointment: storage rejected overlapping update (lost race)")
				return ErrSlotConflict
			}
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%d: %v", app.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = app
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: successfully updated appointment id=%d", result.ID)

	return &Response{
		ID:           result.ID,
		PetID:        result.PetID,
		ClientID:     result.ClientID,
		EmployeeID:   result.EmployeeID,
		ServiceID:    result.ServiceID,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		Status:       string(result.Status),
		PetName:      result.PetName,
		ServiceName:  result.ServiceName,
		ServicePrice: result.ServicePrice,
		Notes:        result.Notes,
		UpdatedAt:    result.UpdatedAt,
	}, nil
}
