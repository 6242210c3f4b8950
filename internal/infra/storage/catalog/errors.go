package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrBusinessNotFound возвращается, когда компания не найдена
	ErrBusinessNotFound = fmt.Errorf("catalog.repository: business %w", domain.ErrNotFound)

	// ErrProfessionalNotFound возвращается, когда мастер не найден
	ErrProfessionalNotFound = fmt.Errorf("catalog.repository: professional %w", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = fmt.Errorf("catalog.repository: service %w", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")

	// ErrDecodeOpeningHours возвращается, когда расписание компании в БД повреждено
	ErrDecodeOpeningHours = errors.New("catalog.repository: failed to decode opening hours")
)
