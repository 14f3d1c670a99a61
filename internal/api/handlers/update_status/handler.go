package update_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetSpa-BookingService/internal/api/handlers"
	updateStatus "github.com/m04kA/PetSpa-BookingService/internal/usecase/update_status"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
	msgInvalidStatus        = "неизвестный статус"
	msgInvalidTransition    = "переход в этот статус недопустим"
)

type Handler struct {
	useCase UpdateStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/status
// Только для персонала: клиентских переходов статуса нет
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &updateStatus.Request{
		AppointmentID: appointmentID,
		TargetStatus:  req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, updateStatus.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/status - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateStatus.ErrInvalidStatus):
			h.logger.Warn("PATCH /appointments/{id}/status - Unknown status %q: appointment_id=%d", req.Status, appointmentID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, updateStatus.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid transition to %q: appointment_id=%d", req.Status, appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, updateStatus.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		default:
			h.logger.Error("PATCH /appointments/{id}/status - Failed to update status: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Status updated: appointment_id=%d, status=%s", appointmentID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
