package reschedule_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStartTime     = "некорректный формат времени начала, ожидается RFC3339"
	msgUnauthorized         = "требуется авторизация"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgNotReschedulable     = "перенести можно только ожидающую или подтвержденную запись"
	msgSlotTaken            = "выбранное время уже занято"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/reschedule - Missing actor")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	appointmentID, err := uuid.Parse(mux.Vars(r)["appointmentId"])
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID, actor)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/reschedule - Invalid start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /appointments/{id}/reschedule - Validation failed: %v", err)
			handlers.RespondValidation(w, err)

		case errors.Is(err, domain.ErrNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{id}/reschedule - Access denied: appointment_id=%s, actor=%s",
				appointmentID, actor.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrInvalidTransition):
			handlers.RespondConflict(w, msgNotReschedulable)

		case errors.Is(err, domain.ErrSlotConflict):
			h.logger.Warn("POST /appointments/{id}/reschedule - Slot taken: appointment_id=%s, start=%s",
				appointmentID, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, domain.ErrPolicyViolation):
			handlers.RespondPolicyViolation(w, err)

		default:
			h.logger.Error("POST /appointments/{id}/reschedule - Failed to reschedule: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/reschedule - Moved: appointment_id=%s", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
