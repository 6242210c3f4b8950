package config

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

	// ErrAccessDenied возвращается, когда пользователь не представляет компанию
	ErrAccessDenied = fmt.Errorf("booking policy: %w", domain.ErrAccessDenied)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
