package get_available_slots

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	verr := domain.NewValidationError()

	if req.BusinessID == uuid.Nil {
		verr.Add("businessId", "is required")
	}
	if req.ProfessionalID == uuid.Nil {
		verr.Add("professionalId", "is required")
	}
	if req.ServiceID == uuid.Nil {
		verr.Add("serviceId", "is required")
	}
	if req.Date.IsZero() {
		verr.Add("date", "is required")
	}

	return verr.OrNil()
}
