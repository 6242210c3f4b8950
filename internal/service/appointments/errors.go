package appointments

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("appointment %w", domain.ErrNotFound)

	// ErrBusinessNotFound возвращается, когда компания не найдена
	ErrBusinessNotFound = fmt.Errorf("business %w", domain.ErrNotFound)

	// ErrProfessionalNotFound возвращается, когда мастер не найден или работает в другой компании
	ErrProfessionalNotFound = fmt.Errorf("professional %w", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав на запись
	ErrAccessDenied = fmt.Errorf("appointments: %w", domain.ErrAccessDenied)

	// ErrInvalidTransition возвращается, когда действие недопустимо из текущего статуса
	ErrInvalidTransition = fmt.Errorf("appointments: %w", domain.ErrInvalidTransition)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
