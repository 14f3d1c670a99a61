package update_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/PetSpa-BookingService/internal/infra/storage/appointment"
)

// UseCase use case перевода записи по цепочке статусов
// Единственная точка смены статуса: и подтверждение, и отмена идут здесь
type UseCase struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Execute выполняет перевод записи в целевой статус
// Недопустимый переход отклоняется без изменения записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateStatus: appointment=%d, target=%s", req.AppointmentID, req.TargetStatus)

	// 1. Валидация входных данных
	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointment id must be positive", ErrInvalidInput)
	}

	target, err := domain.ParseStatus(req.TargetStatus)
	if err != nil {
		uc.logger.Warn("UpdateStatus: unknown status %q", req.TargetStatus)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.TargetStatus)
	}

	// 2. Получаем текущее состояние записи
	app, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateStatus: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("UpdateStatus: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 3. Проверяем переход по цепочке жизненного цикла
	if !domain.CanTransition(app.Status, target) {
		uc.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for appointment id=%d",
			app.Status, target, req.AppointmentID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, app.Status, target)
	}

	// 4. Сохраняем новый статус условным обновлением: переход валидировался
	// против прочитанного статуса, гонку второго перевода отсекает условие
	if err := uc.appointmentRepo.UpdateStatus(ctx, req.AppointmentID, app.Status, target); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusChanged) {
			uc.logger.Warn("UpdateStatus: appointment id=%d left status %s concurrently", req.AppointmentID, app.Status)
			return nil, fmt.Errorf("%w: appointment is no longer %s", ErrInvalidTransition, app.Status)
		}
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("UpdateStatus: failed to update appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateStatus: appointment id=%d moved %s -> %s", req.AppointmentID, app.Status, target)

	next := domain.NextStatuses(target)
	nextStrs := make([]string, 0, len(next))
	for _, s := range next {
		nextStrs = append(nextStrs, string(s))
	}

	return &Response{
		ID:           app.ID,
		PetID:        app.PetID,
		ClientID:     app.ClientID,
		ServiceID:    app.ServiceID,
		StartTime:    app.StartTime,
		EndTime:      app.EndTime,
		Status:       string(target),
		PetName:      app.PetName,
		ServiceName:  app.ServiceName,
		ServicePrice: app.ServicePrice,
		Notes:        app.Notes,
		NextStatuses: nextStrs,
		UpdatedAt:    app.UpdatedAt,
	}, nil
}
