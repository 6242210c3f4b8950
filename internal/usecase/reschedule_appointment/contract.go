package reschedule_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	ListOverlapping(ctx context.Context, professionalID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Appointment, error)
	LockProfessional(ctx context.Context, professionalID uuid.UUID) error
	UpdateStartTime(ctx context.Context, id uuid.UUID, start, end time.Time) error
}

// BlockRepository интерфейс репозитория блокировок расписания
type BlockRepository interface {
	ListOverlapping(ctx context.Context, professionalID uuid.UUID, start, end time.Time) ([]*domain.ScheduleBlock, error)
}

// BusinessRepository интерфейс получения компании
type BusinessRepository interface {
	GetBusiness(ctx context.Context, id uuid.UUID) (*domain.Business, error)
}

// PolicyResolver возвращает действующую политику бронирования
type PolicyResolver interface {
	Resolve(ctx context.Context, businessID uuid.UUID, professionalID *uuid.UUID) (*domain.BookingPolicy, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики действий с записями
type Metrics interface {
	ObserveTransition(action, result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
