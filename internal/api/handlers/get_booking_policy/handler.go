package get_booking_policy

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config"
)

const (
	msgInvalidBusinessID     = "некорректный ID компании"
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgBusinessNotFound      = "компания не найдена"
	msgProfessionalNotFound  = "мастер не найден"
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

// Handle GET /api/v1/businesses/{businessId}/booking-policy
// Query params: professionalId (optional)
// Возвращает действующую политику: мастера, компании или значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/booking-policy - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var professionalID *uuid.UUID
	if s := r.URL.Query().Get("professionalId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/booking-policy - Invalid professional ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidProfessionalID)
			return
		}
		professionalID = &id
	}

	policy, err := h.service.GetEffective(r.Context(), businessID, professionalID)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, config.ErrProfessionalNotFound):
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("GET /businesses/{id}/booking-policy - Failed to get policy: business_id=%s, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/booking-policy - Policy retrieved: business_id=%s, default=%t", businessID, policy.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, policy)
}
