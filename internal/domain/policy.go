package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingPolicy is the scheduling configuration of a business.
// Supports hierarchical configuration:
// 1. Professional-specific (business_id, professional_id)
// 2. Business-wide (business_id, NULL)
type BookingPolicy struct {
	ID                        uuid.UUID
	BusinessID                uuid.UUID
	ProfessionalID            *uuid.UUID // NULL = applies to all professionals
	SlotStepMinutes           int
	MinBookingNoticeMinutes   int
	AdvanceBookingDays        int // 0 = unlimited
	CancellationNoticeMinutes int // 0 = no notice window
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// DefaultBookingPolicy returns the built-in policy used when a business has none
func DefaultBookingPolicy(businessID uuid.UUID) *BookingPolicy {
	return &BookingPolicy{
		BusinessID:                businessID,
		SlotStepMinutes:           DefaultSlotStepMinutes,
		MinBookingNoticeMinutes:   DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:        DefaultAdvanceBookingDays,
		CancellationNoticeMinutes: DefaultCancellationNoticeMinutes,
	}
}

// IsBusinessWide returns true if this policy is not bound to a professional
func (p *BookingPolicy) IsBusinessWide() bool {
	return p.ProfessionalID == nil
}

// SlotStep returns the grid step
func (p *BookingPolicy) SlotStep() time.Duration {
	return time.Duration(p.SlotStepMinutes) * time.Minute
}

// MinNotice returns the minimum lead time before a slot may be booked
func (p *BookingPolicy) MinNotice() time.Duration {
	return time.Duration(p.MinBookingNoticeMinutes) * time.Minute
}

// CancellationNotice returns the minimum lead time for client cancel/reschedule
func (p *BookingPolicy) CancellationNotice() time.Duration {
	return time.Duration(p.CancellationNoticeMinutes) * time.Minute
}

// HasAdvanceBookingLimit returns true if there's a limit on how far ahead bookings can be made
func (p *BookingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// LatestBookableDay returns the last calendar day (in loc) open for booking, or false if unlimited
func (p *BookingPolicy) LatestBookableDay(now time.Time, loc *time.Location) (time.Time, bool) {
	if !p.HasAdvanceBookingLimit() {
		return time.Time{}, false
	}
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return today.AddDate(0, 0, p.AdvanceBookingDays), true
}

// WithinCancellationNotice reports whether acting now on an appointment starting at start
// would violate the cancellation notice window
func (p *BookingPolicy) WithinCancellationNotice(start, now time.Time) bool {
	if p.CancellationNoticeMinutes <= 0 {
		return false
	}
	return start.Sub(now) < p.CancellationNotice()
}
