package list_booking_policies

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config"
)

const (
	msgInvalidBusinessID = "некорректный ID компании"
	msgUnauthorized      = "требуется авторизация"
	msgForbidden         = "доступ запрещен"
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

// Handle GET /api/v1/businesses/{businessId}/booking-policies
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	businessID, err := uuid.Parse(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/booking-policies - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	result, err := h.service.GetAllByBusiness(r.Context(), actor, businessID)
	if err != nil {
		if errors.Is(err, config.ErrAccessDenied) {
			h.logger.Warn("GET /businesses/{id}/booking-policies - Access denied: business_id=%s, actor=%s", businessID, actor.AccountID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /businesses/{id}/booking-policies - Failed to get policies: business_id=%s, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
