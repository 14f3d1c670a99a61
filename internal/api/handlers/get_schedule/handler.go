package get_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/PetSpa-BookingService/internal/api/handlers"
	"github.com/m04kA/PetSpa-BookingService/internal/domain"
	getSchedule "github.com/m04kA/PetSpa-BookingService/internal/usecase/get_schedule"
)

const (
	msgInvalidStartDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetScheduleUseCase
	// Привилегированный режим отдаёт занявшие записи в ячейках.
	// Включается только на админском маршруте за Staff middleware
	privileged bool
	logger     Logger
}

func NewHandler(useCase GetScheduleUseCase, privileged bool, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		privileged: privileged,
		logger:     logger,
	}
}

// Handle GET /api/v1/schedule и GET /api/v1/admin/schedule
// Опциональный query-параметр startDate задаёт первый день окна
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var startDate time.Time
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /schedule - Invalid startDate %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidStartDate)
			return
		}
		startDate = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getSchedule.Request{
		StartDate:  startDate,
		Privileged: h.privileged,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSchedule.ErrInvalidInput):
			h.logger.Warn("GET /schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStartDate)
		default:
			h.logger.Error("GET /schedule - Failed to build schedule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
