package get_schedule

import (
	"context"
	"fmt"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
)

// UseCase use case построения календарной сетки занятости
type UseCase struct {
	appointmentRepo AppointmentRepository
	calendar        domain.Calendar
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	calendar domain.Calendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		calendar:        calendar,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute строит сетку занятости на окно календаря
// Чтение без записи: сетка пересчитывается на каждый запрос
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	anchor := req.StartDate
	if anchor.IsZero() {
		anchor = uc.timeProvider.Now()
	}

	days := uc.calendar.WindowDays(anchor)
	hours := uc.calendar.Hours()

	// Диапазон выборки покрывает всё окно: из-за сдвига воскресенья
	// последний день может выходить за anchor + Days
	from := days[0]
	to := days[0]
	for _, d := range days[1:] {
		if d.After(to) {
			to = d
		}
	}
	to = to.AddDate(0, 0, 1)

	appointments, err := uc.appointmentRepo.ListInRange(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetSchedule: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	cells := buildGrid(days, hours, appointments, req.Privileged, uc.logger)

	uc.logger.Info("GetSchedule: built grid %d days x %d hours, %d appointments in window, privileged=%t",
		len(days), len(hours), len(appointments), req.Privileged)

	return &Response{
		Days:  days,
		Hours: hours,
		Cells: cells,
	}, nil
}
