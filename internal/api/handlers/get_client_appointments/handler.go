package get_client_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgForbidden    = "доступно только клиентам"
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

// Handle GET /api/v1/clients/me/appointments
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/me/appointments - Missing actor")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}

	result, err := h.service.ListByClient(r.Context(), actor, status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			handlers.RespondValidation(w, err)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("GET /clients/me/appointments - Access denied: actor=%s", actor.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /clients/me/appointments - Failed to get appointments: account_id=%s, error=%v",
				actor.AccountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/me/appointments - Appointments retrieved: account_id=%s, count=%d",
		actor.AccountID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
