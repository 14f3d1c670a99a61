package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PetSpa-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/PetSpa-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/PetSpa-BookingService/internal/service/appointments/models"
)

// Service сервис чтения записей на груминг
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Клиент видит только свои записи, персонал - любые
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, staff bool) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d, staff=%t", id, userID, staff)

	app, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if !staff && app.ClientID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(app), nil
}

// GetUserAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for client=%d, status=%v", req.ClientID, req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserAppointments: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	apps, err := s.appointmentRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for client=%d", len(apps), req.ClientID)
	return models.FromDomainAppointmentList(apps), nil
}

// ListAppointments получает записи салона с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу, сотруднику и включению
// отменённых записей. Доступно только персоналу
func (s *Service) ListAppointments(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := "ListAppointments: fetching appointments"
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.EmployeeID != nil {
		logMsg += fmt.Sprintf(", employee=%d", *req.EmployeeID)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListAppointments: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	apps, err := s.appointmentRepo.GetAllWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListAppointments: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListAppointments: successfully fetched %d appointments", len(apps))
	return models.FromDomainAppointmentList(apps), nil
}

// StatusSummary возвращает количество записей по каждому статусу
// Используется для колонок kanban-доски админки
func (s *Service) StatusSummary(ctx context.Context) (*models.StatusSummaryResponse, error) {
	counts, err := s.appointmentRepo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("StatusSummary: repository error: %v", err)
		return nil, fmt.Errorf("%w: StatusSummary - repository error: %v", ErrInternal, err)
	}

	out := make(map[string]int, len(counts))
	for status, n := range counts {
		out[string(status)] = n
	}

	return &models.StatusSummaryResponse{Counts: out}, nil
}
