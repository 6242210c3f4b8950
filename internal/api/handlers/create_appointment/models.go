package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/identity"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	BusinessID     uuid.UUID     `json:"businessId"`
	ProfessionalID uuid.UUID     `json:"professionalId"`
	ServiceID      uuid.UUID     `json:"serviceId"`
	StartTime      string        `json:"startTime"` // RFC3339
	Notes          *string       `json:"notes,omitempty"`
	Guest          *GuestRequest `json:"guest,omitempty"`
	Website        string        `json:"website,omitempty"` // скрытое поле формы
}

// GuestRequest контакты гостя
type GuestRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	BusinessID      uuid.UUID  `json:"businessId"`
	ProfessionalID  uuid.UUID  `json:"professionalId"`
	ServiceID       uuid.UUID  `json:"serviceId"`
	ClientID        *uuid.UUID `json:"clientId,omitempty"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         time.Time  `json:"endTime"`
	DurationMinutes int        `json:"durationMinutes"`
	PaymentAmount   float64    `json:"paymentAmount"`
	Status          string     `json:"status"`
	Notes           *string    `json:"notes,omitempty"`
	IsGuest         bool       `json:"isGuest"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(accountID *uuid.UUID, idempotencyKey *string, clientKey string) (*createAppointment.Request, error) {
	client := identity.Request{
		AccountID: accountID,
		Honeypot:  r.Website,
		ClientKey: clientKey,
	}
	if r.Guest != nil {
		client.Guest = &identity.GuestFields{
			Name:  r.Guest.Name,
			Phone: r.Guest.Phone,
			Email: r.Guest.Email,
		}
	}

	// Для бота формат времени не проверяется: запрос все равно будет отброшен
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil && !client.IsBot() {
		return nil, err
	}

	return &createAppointment.Request{
		BusinessID:     r.BusinessID,
		ProfessionalID: r.ProfessionalID,
		ServiceID:      r.ServiceID,
		StartTime:      startTime,
		Notes:          r.Notes,
		IdempotencyKey: idempotencyKey,
		Client:         client,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		BusinessID:      resp.BusinessID,
		ProfessionalID:  resp.ProfessionalID,
		ServiceID:       resp.ServiceID,
		ClientID:        resp.ClientID,
		StartTime:       resp.StartTime,
		EndTime:         resp.EndTime,
		DurationMinutes: resp.DurationMinutes,
		PaymentAmount:   resp.PaymentAmount,
		Status:          resp.Status,
		Notes:           resp.Notes,
		IsGuest:         resp.IsGuest,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
}

// decoyResponse правдоподобный ответ для отброшенного запроса.
// Ничего не сохранено, ID случайный.
func decoyResponse(req *createAppointment.Request, now time.Time) *AppointmentResponse {
	return &AppointmentResponse{
		ID:             uuid.New(),
		BusinessID:     req.BusinessID,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		StartTime:      req.StartTime,
		EndTime:        req.StartTime,
		Status:         string(domain.StatusPending),
		Notes:          req.Notes,
		IsGuest:        req.Client.AccountID == nil,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
