package config

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validatePolicy валидирует параметры политики
func validatePolicy(p *domain.BookingPolicy) error {
	verr := domain.NewValidationError()

	if p.SlotStepMinutes < domain.MinSlotStepMinutes || p.SlotStepMinutes > domain.MaxSlotStepMinutes {
		verr.Add("slotStepMinutes", "must be between 5 and 240")
	}

	if p.MinBookingNoticeMinutes < 0 || p.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		verr.Add("minBookingNoticeMinutes", "must be between 0 and 10080")
	}

	if p.AdvanceBookingDays < 0 || p.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		verr.Add("advanceBookingDays", "must be between 0 and 365")
	}

	if p.CancellationNoticeMinutes < 0 || p.CancellationNoticeMinutes > domain.MaxCancellationNoticeMinutes {
		verr.Add("cancellationNoticeMinutes", "must be between 0 and 10080")
	}

	return verr.OrNil()
}
