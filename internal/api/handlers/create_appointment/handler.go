package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/PetSpa-BookingService/internal/api/handlers"
	"github.com/m04kA/PetSpa-BookingService/internal/api/middleware"
	createAppointment "github.com/m04kA/PetSpa-BookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStartTime    = "некорректный формат времени начала, ожидается YYYY-MM-DD HH:MM"
	msgSlotConflict        = "выбранное время пересекается с существующей записью"
	msgPetNotFound         = "питомец не найден"
	msgPetNotOwned         = "питомец принадлежит другому клиенту"
	msgServiceNotFound     = "услуга не найдена"
	msgTimeInPast          = "время записи уже прошло"
	msgClosedDay           = "салон закрыт в выбранный день"
	msgOutsideWorkingHours = "время записи вне рабочих часов салона"
	msgInvalidInput        = "некорректные данные запроса"
	msgUnauthorized        = "пользователь не определён"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse start time %q: %v", req.StartTime, err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: client_id=%d, start=%s", clientID, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrPetNotFound):
			h.logger.Warn("POST /appointments - Pet not found: client_id=%d, pet_id=%d", clientID, req.PetID)
			handlers.RespondNotFound(w, msgPetNotFound)

		case errors.Is(err, createAppointment.ErrPetNotOwned):
			h.logger.Warn("POST /appointments - Pet not owned: client_id=%d, pet_id=%d", clientID, req.PetID)
			handlers.RespondForbidden(w, msgPetNotOwned)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: client_id=%d, service_id=%d", clientID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Start time in past: client_id=%d, start=%s", clientID, req.StartTime)
			handlers.RespondBadRequest(w, msgTimeInPast)

		case errors.Is(err, createAppointment.ErrClosedDay):
			h.logger.Warn("POST /appointments - Closed day: client_id=%d, start=%s", clientID, req.StartTime)
			handlers.RespondBadRequest(w, msgClosedDay)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: client_id=%d, start=%s", clientID, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, client_id=%d", result.ID, clientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
