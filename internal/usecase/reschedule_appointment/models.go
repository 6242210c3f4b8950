package reschedule_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID uuid.UUID
	StartTime     time.Time    // Новое время начала
	Actor         domain.Actor // Кто переносит
}

// Response модель ответа с перенесенной записью
type Response struct {
	ID              uuid.UUID
	BusinessID      uuid.UUID
	ProfessionalID  uuid.UUID
	ServiceID       uuid.UUID
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          string
	PreviousStart   time.Time // Время начала до переноса
}
