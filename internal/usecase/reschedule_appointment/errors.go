package reschedule_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("appointment %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда переносить запись пытается не владелец и не компания
	ErrAccessDenied = fmt.Errorf("reschedule_appointment: %w", domain.ErrAccessDenied)

	// ErrNotReschedulable возвращается, когда запись уже завершена или отменена
	ErrNotReschedulable = fmt.Errorf("reschedule_appointment: only pending or confirmed appointments can be moved: %w", domain.ErrInvalidTransition)

	// ErrSlotTaken возвращается, когда новое время пересекается с другой записью или блокировкой
	ErrSlotTaken = fmt.Errorf("reschedule_appointment: time is no longer available: %w", domain.ErrSlotConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
