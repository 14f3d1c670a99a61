package update_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetSpa-BookingService/internal/api/handlers"
	updateAppointment "github.com/m04kA/PetSpa-BookingService/internal/usecase/update_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidStartTime     = "некорректный формат времени начала, ожидается YYYY-MM-DD HH:MM"
	msgNotFound             = "запись не найдена"
	msgInvalidStatus        = "некорректный статус записи"
	msgServiceNotFound      = "услуга не найдена"
	msgSlotConflict         = "новое время пересекается с существующей записью"
	msgInvalidInput         = "некорректные данные запроса"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}
// Административный пересмотр записи: услуга, время, сотрудник, статус, заметки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/{id} - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateAppointment.ErrInvalidStatus):
			h.logger.Warn("PUT /appointments/{id} - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, updateAppointment.ErrServiceNotFound):
			h.logger.Warn("PUT /appointments/{id} - Service not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateAppointment.ErrSlotConflict):
			h.logger.Warn("PUT /appointments/{id} - Slot conflict: appointment_id=%d", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /appointments/{id} - Failed to update appointment: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/{id} - Appointment updated: appointment_id=%d", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
