package list_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/PetSpa-BookingService/internal/api/handlers"
	"github.com/m04kA/PetSpa-BookingService/internal/domain"
	"github.com/m04kA/PetSpa-BookingService/internal/service/appointments"
	"github.com/m04kA/PetSpa-BookingService/internal/service/appointments/models"
)

const (
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgInvalidFilter     = "некорректные параметры фильтрации"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/appointments
// Параметры фильтрации: startDate, endDate, status, employeeId, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseListRequest(r)
	if err != nil {
		h.logger.Warn("GET /admin/appointments - Invalid query: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.ListAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /admin/appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/appointments - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/appointments - Retrieved %d appointments", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleSummary GET /api/v1/admin/appointments/summary
// Количество записей по статусам для колонок kanban-доски
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.StatusSummary(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/appointments/summary - Failed to build summary: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseListRequest разбирает query-параметры фильтрации
func parseListRequest(r *http.Request) (*models.ListAppointmentsRequest, error) {
	q := r.URL.Query()
	req := &models.ListAppointmentsRequest{}

	if raw := q.Get("startDate"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, errors.New(msgInvalidDate)
		}
		req.StartDate = &parsed
	}

	if raw := q.Get("endDate"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, errors.New(msgInvalidDate)
		}
		// Конец периода включительно: фильтр работает по началу суток
		end := parsed.AddDate(0, 0, 1)
		req.EndDate = &end
	}

	if raw := q.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := q.Get("employeeId"); raw != "" {
		employeeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || employeeID <= 0 {
			return nil, errors.New(msgInvalidEmployeeID)
		}
		req.EmployeeID = &employeeID
	}

	req.IncludeInactive = q.Get("includeInactive") == "true"

	return req, nil
}
