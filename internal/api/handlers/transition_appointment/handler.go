package transition_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgUnauthorized         = "требуется авторизация"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgInvalidTransition    = "действие недопустимо для текущего статуса записи"
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

// Handle POST /api/v1/appointments/{appointmentId}/transition
// Body: {"action": "confirm|complete|cancel", "reason": "..."}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/transition - Missing actor")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	appointmentID, err := uuid.Parse(mux.Vars(r)["appointmentId"])
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/transition - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/transition - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Transition(r.Context(), actor, appointmentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /appointments/{id}/transition - Validation failed: %v", err)
			handlers.RespondValidation(w, err)

		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /appointments/{id}/transition - Not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{id}/transition - Access denied: appointment_id=%s, actor=%s",
				appointmentID, actor.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("POST /appointments/{id}/transition - Invalid transition: appointment_id=%s, action=%s",
				appointmentID, req.Action)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, domain.ErrPolicyViolation):
			h.logger.Warn("POST /appointments/{id}/transition - Policy violation: %v", err)
			handlers.RespondPolicyViolation(w, err)

		default:
			h.logger.Error("POST /appointments/{id}/transition - Failed to apply %s: appointment_id=%s, error=%v",
				req.Action, appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/transition - Applied: appointment_id=%s, action=%s, status=%s",
		appointmentID, req.Action, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
