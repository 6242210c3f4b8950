package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/identity"
)

// Request модель запроса на создание записи
type Request struct {
	BusinessID     uuid.UUID
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID
	StartTime      time.Time        // Абсолютное время начала
	Notes          *string          // Комментарий клиента (опционально)
	IdempotencyKey *string          // Ключ повторного запроса (опционально)
	Client         identity.Request // Кто бронирует: аккаунт или гость
}

// Response модель ответа с созданной записью
type Response struct {
	ID              uuid.UUID
	BusinessID      uuid.UUID
	ProfessionalID  uuid.UUID
	ServiceID       uuid.UUID
	ClientID        *uuid.UUID // nil для гостя
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	PaymentAmount   float64
	Status          string
	Notes           *string
	IsGuest         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Replayed  bool // Запись уже была создана с тем же ключом идемпотентности
	Discarded bool // Запрос от бота: ничего не сохранено
}

func toResponse(a *domain.Appointment, replayed bool) *Response {
	resp := &Response{
		ID:              a.ID,
		BusinessID:      a.BusinessID,
		ProfessionalID:  a.ProfessionalID,
		ServiceID:       a.ServiceID,
		StartTime:       a.StartTime,
		EndTime:         a.EndTime(),
		DurationMinutes: a.DurationMinutes,
		PaymentAmount:   a.PaymentAmount,
		Status:          string(a.Status),
		Notes:           a.Notes,
		IsGuest:         a.IsGuest(),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
		Replayed:        replayed,
	}
	if !resp.IsGuest {
		clientID := a.ClientID
		resp.ClientID = &clientID
	}
	return resp
}
