package chat

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PetSpa-BookingService/internal/api/handlers"
	"github.com/m04kA/PetSpa-BookingService/internal/api/middleware"
	"github.com/m04kA/PetSpa-BookingService/internal/flow"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSessionNotFound    = "диалог не найден или истёк"
	msgSessionFinished    = "диалог уже завершён"
	msgForeignSession     = "диалог принадлежит другому пользователю"
)

// MessageRequest HTTP request model сообщения в диалоге
type MessageRequest struct {
	Text string `json:"text"`
}

type Handler struct {
	engine FlowEngine
	logger Logger
}

func NewHandler(engine FlowEngine, logger Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// HandleStart POST /api/v1/chat/sessions
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	reply, err := h.engine.Start(r.Context(), userID)
	if err != nil {
		h.logger.Error("POST /chat/sessions - Failed to start session: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /chat/sessions - Session started: session_id=%s, user_id=%d", reply.SessionID, userID)
	handlers.RespondJSON(w, http.StatusCreated, reply)
}

// HandleMessage POST /api/v1/chat/sessions/{sessionId}/messages
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req MessageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /chat/sessions/{id}/messages - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	reply, err := h.engine.Message(r.Context(), sessionID, userID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrSessionNotFound):
			h.logger.Warn("POST /chat/sessions/{id}/messages - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, flow.ErrSessionAccessDenied):
			h.logger.Warn("POST /chat/sessions/{id}/messages - Access denied: session_id=%s, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgForeignSession)

		case errors.Is(err, flow.ErrSessionFinished):
			h.logger.Warn("POST /chat/sessions/{id}/messages - Session finished: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusConflict, msgSessionFinished)

		default:
			h.logger.Error("POST /chat/sessions/{id}/messages - Failed to process message: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, reply)
}

// HandleAbandon DELETE /api/v1/chat/sessions/{sessionId}
func (h *Handler) HandleAbandon(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.engine.Abandon(sessionID, userID); err != nil {
		switch {
		case errors.Is(err, flow.ErrSessionNotFound):
			h.logger.Warn("DELETE /chat/sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, flow.ErrSessionAccessDenied):
			h.logger.Warn("DELETE /chat/sessions/{id} - Access denied: session_id=%s, user_id=%d", sessionID, userID)
			handlers.RespondForbidden(w, msgForeignSession)

		default:
			h.logger.Error("DELETE /chat/sessions/{id} - Failed to abandon session: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /chat/sessions/{id} - Session abandoned: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
