package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgInvalidBusinessID     = "некорректный ID компании"
	msgInvalidProfessionalID = "некорректный ID мастера"
	msgInvalidServiceID      = "некорректный ID услуги"
	msgMissingServiceID      = "ID услуги обязателен"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBusinessNotFound      = "компания не найдена"
	msgProfessionalNotFound  = "мастер не найден"
	msgServiceNotFound       = "услуга не найдена"
	msgInactive              = "мастер или услуга недоступны для записи"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/professionals/{professionalId}/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := uuid.Parse(vars["businessId"])
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	professionalID, err := uuid.Parse(vars["professionalId"])
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}
	serviceID, err := uuid.Parse(serviceIDStr)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(businessID, professionalID, serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /available-slots - Validation failed: %v", err)
			handlers.RespondValidation(w, err)

		case errors.Is(err, getAvailableSlots.ErrBusinessNotFound):
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getAvailableSlots.ErrProfessionalNotFound):
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, domain.ErrInactive):
			h.logger.Warn("GET /available-slots - Inactive: %v", err)
			handlers.RespondUnprocessable(w, msgInactive)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: business_id=%s, professional_id=%s, error=%v",
				businessID, professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Slots retrieved: business_id=%s, professional_id=%s, slots_count=%d",
		businessID, professionalID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
