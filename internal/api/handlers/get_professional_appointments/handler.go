package get_professional_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

const (
	msgInvalidBusinessID     = "некорректный ID компании"
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnauthorized          = "требуется авторизация"
	msgForbidden             = "доступ запрещен"
	msgNotFound              = "компания или мастер не найдены"
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

// Handle GET /api/v1/businesses/{businessId}/professionals/{professionalId}/appointments
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /professionals/{id}/appointments - Missing actor")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	vars := mux.Vars(r)
	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}
	professionalID, err := uuid.Parse(vars["professionalId"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/appointments - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListByProfessional(r.Context(), actor, &models.ListByProfessionalRequest{
		BusinessID:     businessID,
		ProfessionalID: professionalID,
		Date:           date,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("GET /professionals/{id}/appointments - Access denied: business_id=%s, actor=%s",
				businessID, actor.AccountID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /professionals/{id}/appointments - Failed to get appointments: professional_id=%s, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/appointments - Appointments retrieved: professional_id=%s, date=%s, count=%d",
		professionalID, dateStr, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
