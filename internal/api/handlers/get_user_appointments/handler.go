package get_user_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetSpa-BookingService/internal/api/handlers"
	"github.com/m04kA/PetSpa-BookingService/internal/api/middleware"
	"github.com/m04kA/PetSpa-BookingService/internal/service/appointments"
	"github.com/m04kA/PetSpa-BookingService/internal/service/appointments/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidStatus = "некорректный статус"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/users/{userId}/appointments
// Клиент видит только свою историю, персонал - историю любого клиента
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	targetID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/appointments - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if targetID != userID && !middleware.IsStaff(r.Context()) {
		h.logger.Warn("GET /users/{id}/appointments - Access denied: user_id=%d, target_id=%d", userID, targetID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetUserAppointmentsRequest{ClientID: targetID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetUserAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/appointments - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{id}/appointments - Failed to get appointments: user_id=%d, error=%v", targetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/appointments - Retrieved %d appointments for user_id=%d",
		len(result.Appointments), targetID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
