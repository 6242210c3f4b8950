package update_booking_policy

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config/models"
)

const (
	msgInvalidBusinessID    = "некорректный ID компании"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgUnauthorized         = "требуется авторизация"
	msgForbidden            = "доступ запрещен"
	msgBusinessNotFound     = "компания не найдена"
	msgProfessionalNotFound = "мастер не найден"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/businesses/{businessId}/booking-policy
// Без professionalId в теле меняется политика всей компании
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	businessID, err := uuid.Parse(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/booking-policy - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req models.UpsertPolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/booking-policy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.BusinessID = businessID

	policy, err := h.service.Upsert(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PUT /businesses/{id}/booking-policy - Validation failed: %v", err)
			handlers.RespondValidation(w, err)

		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("PUT /businesses/{id}/booking-policy - Access denied: business_id=%s, actor=%s", businessID, actor.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, config.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, config.ErrProfessionalNotFound):
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("PUT /businesses/{id}/booking-policy - Failed to save policy: business_id=%s, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/booking-policy - Policy saved: business_id=%s, professional_id=%v", businessID, req.ProfessionalID)
	handlers.RespondJSON(w, http.StatusOK, policy)
}
