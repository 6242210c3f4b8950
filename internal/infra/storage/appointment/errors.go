package appointment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("appointment.repository: appointment %w", domain.ErrNotFound)

	// ErrOverlap возвращается, когда ограничение исключения отклонило пересекающуюся запись
	ErrOverlap = fmt.Errorf("appointment.repository: overlapping appointment: %w", domain.ErrSlotConflict)

	// ErrDuplicateIdempotencyKey возвращается, когда запись с таким ключом идемпотентности уже есть
	ErrDuplicateIdempotencyKey = errors.New("appointment.repository: duplicate idempotency key")

	// ErrStatusChanged возвращается, когда статус записи изменился до обновления
	ErrStatusChanged = fmt.Errorf("appointment.repository: status changed concurrently: %w", domain.ErrInvalidTransition)

	// ErrGuestClient возвращается при попытке выбрать записи по гостевому идентификатору
	ErrGuestClient = fmt.Errorf("appointment.repository: guest client id is not an account: %w", domain.ErrValidation)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
