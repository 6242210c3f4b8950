package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// TransitionRequest запрос на смену статуса записи
type TransitionRequest struct {
	Action string  `json:"action"`           // confirm | complete | cancel
	Reason *string `json:"reason,omitempty"` // Причина отмены (опционально)
}

// ListByProfessionalRequest запрос на записи мастера за день
type ListByProfessionalRequest struct {
	BusinessID     uuid.UUID `json:"businessId"`
	ProfessionalID uuid.UUID `json:"professionalId"`
	Date           time.Time `json:"date"` // Календарный день в часовом поясе компании
}

// Response модели

// GuestResponse контакты гостя, видны только компании
type GuestResponse struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                 uuid.UUID      `json:"id"`
	BusinessID         uuid.UUID      `json:"businessId"`
	ProfessionalID     uuid.UUID      `json:"professionalId"`
	ServiceID          uuid.UUID      `json:"serviceId"`
	ClientID           *uuid.UUID     `json:"clientId,omitempty"` // nil для гостя
	IsGuest            bool           `json:"isGuest"`
	Guest              *GuestResponse `json:"guest,omitempty"`
	StartTime          time.Time      `json:"startTime"`
	EndTime            time.Time      `json:"endTime"`
	DurationMinutes    int            `json:"durationMinutes"`
	PaymentAmount      float64        `json:"paymentAmount"`
	Status             string         `json:"status"`
	Notes              *string        `json:"notes,omitempty"`
	CancellationReason *string        `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time     `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// Конвертеры

// FromDomainAppointment конвертирует domain.Appointment в AppointmentResponse
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:                 a.ID,
		BusinessID:         a.BusinessID,
		ProfessionalID:     a.ProfessionalID,
		ServiceID:          a.ServiceID,
		IsGuest:            a.IsGuest(),
		StartTime:          a.StartTime,
		EndTime:            a.EndTime(),
		DurationMinutes:    a.DurationMinutes,
		PaymentAmount:      a.PaymentAmount,
		Status:             string(a.Status),
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CancelledAt:        a.CancelledAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
	if !resp.IsGuest {
		clientID := a.ClientID
		resp.ClientID = &clientID
	}
	return resp
}

// WithGuest добавляет контакты гостя
func (r *AppointmentResponse) WithGuest(g *domain.GuestBooking) *AppointmentResponse {
	if g != nil {
		r.Guest = &GuestResponse{Name: g.ClientName, Phone: g.ClientPhone, Email: g.ClientEmail}
	}
	return r
}

// FromDomainAppointmentList конвертирует список записей
func FromDomainAppointmentList(items []*domain.Appointment) *AppointmentListResponse {
	list := make([]*AppointmentResponse, 0, len(items))
	for _, a := range items {
		list = append(list, FromDomainAppointment(a))
	}
	return &AppointmentListResponse{Appointments: list, Total: len(list)}
}

// ToDomainStatus конвертирует строку в статус записи
func ToDomainStatus(s string) (domain.AppointmentStatus, bool) {
	switch status := domain.AppointmentStatus(s); status {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled:
		return status, true
	default:
		return "", false
	}
}
