package create_appointment

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
)

// maxIdempotencyKeyLength ограничение колонки appointments.idempotency_key
const maxIdempotencyKeyLength = 255

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
	if req.StartTime.IsZero() {
		verr.Add("startTime", "is required")
	}
	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		verr.Add("notes", fmt.Sprintf("must be at most %d characters", domain.MaxNotesLength))
	}
	if req.IdempotencyKey != nil {
		switch n := len(*req.IdempotencyKey); {
		case n == 0:
			verr.Add("idempotencyKey", "must not be empty")
		case n > maxIdempotencyKeyLength:
			verr.Add("idempotencyKey", fmt.Sprintf("must be at most %d characters", maxIdempotencyKeyLength))
		}
	}

	return verr.OrNil()
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

// matchesReplay проверяет, что ключ идемпотентности повторно прислан для той же записи
func matchesReplay(existing *domain.Appointment, req *Request) bool {
	return existing.ProfessionalID == req.ProfessionalID &&
		existing.ServiceID == req.ServiceID &&
		existing.StartTime.Equal(req.StartTime)
}

// matchesGuest проверяет, что гость повторяет свой запрос, а не чужой
func matchesGuest(stored *domain.GuestBooking, contact domain.GuestContact) bool {
	if stored.ClientName != contact.Name || stored.ClientPhone != contact.Phone {
		return false
	}
	switch {
	case stored.ClientEmail == nil && contact.Email == nil:
		return true
	case stored.ClientEmail == nil || contact.Email == nil:
		return false
	default:
		return *stored.ClientEmail == *contact.Email
	}
}
