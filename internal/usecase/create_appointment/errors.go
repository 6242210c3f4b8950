package create_appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrBusinessNotFound возвращается, когда компания не найдена
	ErrBusinessNotFound = fmt.Errorf("business %w", domain.ErrNotFound)

	// ErrProfessionalNotFound возвращается, когда мастер не найден или работает в другой компании
	ErrProfessionalNotFound = fmt.Errorf("professional %w", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена или принадлежит другой компании
	ErrServiceNotFound = fmt.Errorf("service %w", domain.ErrNotFound)

	// ErrBusinessInactive возвращается, когда компания отключена
	ErrBusinessInactive = fmt.Errorf("business is %w", domain.ErrInactive)

	// ErrProfessionalInactive возвращается, когда мастер отключен
	ErrProfessionalInactive = fmt.Errorf("professional is %w", domain.ErrInactive)

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = fmt.Errorf("service is %w", domain.ErrInactive)

	// ErrSlotTaken возвращается, когда выбранное время пересекается с другой записью или блокировкой
	ErrSlotTaken = fmt.Errorf("create_appointment: time is no longer available: %w", domain.ErrSlotConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
