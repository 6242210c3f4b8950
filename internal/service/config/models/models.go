package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// UpsertPolicyRequest запрос на создание или изменение политики бронирования
// Все поля значений опциональны - обновляются только переданные
type UpsertPolicyRequest struct {
	BusinessID                uuid.UUID  `json:"-"`
	ProfessionalID            *uuid.UUID `json:"professionalId,omitempty"` // NULL = для всей компании
	SlotStepMinutes           *int       `json:"slotStepMinutes,omitempty"`
	MinBookingNoticeMinutes   *int       `json:"minBookingNoticeMinutes,omitempty"`
	AdvanceBookingDays        *int       `json:"advanceBookingDays,omitempty"`
	CancellationNoticeMinutes *int       `json:"cancellationNoticeMinutes,omitempty"`
}

// ApplyToPolicy применяет обновления к существующей политике
// Обновляются только непустые (not nil) поля из request
func (r *UpsertPolicyRequest) ApplyToPolicy(p *domain.BookingPolicy) {
	if r.SlotStepMinutes != nil {
		p.SlotStepMinutes = *r.SlotStepMinutes
	}
	if r.MinBookingNoticeMinutes != nil {
		p.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
	if r.AdvanceBookingDays != nil {
		p.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.CancellationNoticeMinutes != nil {
		p.CancellationNoticeMinutes = *r.CancellationNoticeMinutes
	}
}

// Response модели

// PolicyResponse ответ с данными политики бронирования
type PolicyResponse struct {
	ID                        *uuid.UUID `json:"id,omitempty"` // nil для значений по умолчанию
	BusinessID                uuid.UUID  `json:"businessId"`
	ProfessionalID            *uuid.UUID `json:"professionalId,omitempty"`
	SlotStepMinutes           int        `json:"slotStepMinutes"`
	MinBookingNoticeMinutes   int        `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays        int        `json:"advanceBookingDays"`
	CancellationNoticeMinutes int        `json:"cancellationNoticeMinutes"`
	IsDefault                 bool       `json:"isDefault"`
	UpdatedAt                 *time.Time `json:"updatedAt,omitempty"`
}

// PolicyListResponse ответ со списком политик компании
type PolicyListResponse struct {
	Policies []PolicyResponse `json:"policies"`
}

// Методы конвертации

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.BookingPolicy) *PolicyResponse {
	if p == nil {
		return nil
	}

	resp := &PolicyResponse{
		BusinessID:                p.BusinessID,
		ProfessionalID:            p.ProfessionalID,
		SlotStepMinutes:           p.SlotStepMinutes,
		MinBookingNoticeMinutes:   p.MinBookingNoticeMinutes,
		AdvanceBookingDays:        p.AdvanceBookingDays,
		CancellationNoticeMinutes: p.CancellationNoticeMinutes,
		IsDefault:                 p.ID == uuid.Nil,
	}
	if p.ID != uuid.Nil {
		id := p.ID
		updatedAt := p.UpdatedAt
		resp.ID = &id
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

// FromDomainPolicyList конвертирует список domain моделей в DTO
func FromDomainPolicyList(policies []*domain.BookingPolicy) *PolicyListResponse {
	resp := &PolicyListResponse{
		Policies: make([]PolicyResponse, 0, len(policies)),
	}
	for _, p := range policies {
		if pr := FromDomainPolicy(p); pr != nil {
			resp.Policies = append(resp.Policies, *pr)
		}
	}
	return resp
}
