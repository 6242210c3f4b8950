package reschedule_appointment

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	verr := domain.NewValidationError()

	if req.AppointmentID == uuid.Nil {
		verr.Add("appointmentId", "is required")
	}
	if req.StartTime.IsZero() {
		verr.Add("startTime", "is required")
	}
	if req.Actor.AccountID == uuid.Nil {
		verr.Add("actor", "is required")
	}

	return verr.OrNil()
}

// canManage проверяет, что актор владеет записью или представляет ее компанию
func canManage(actor domain.Actor, a *domain.Appointment) bool {
	return actor.IsBusinessOf(a.BusinessID) || a.IsOwnedBy(actor.Identity())
}

// startTimeError превращает отказ правил расписания в ошибку поля startTime
// Возвращает nil, если ошибка не относится к правилам (например, битые часы работы)
func startTimeError(err error) error {
	message, ok := scheduling.Reason(err)
	if !ok {
		return nil
	}

	verr := domain.NewValidationError()
	verr.Add("startTime", message)
	return verr
}
