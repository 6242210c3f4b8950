package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/identity"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	FindByIdempotencyKey(ctx context.Context, businessID uuid.UUID, key string) (*domain.Appointment, error)
	ListOverlapping(ctx context.Context, professionalID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Appointment, error)
	LockProfessional(ctx context.Context, professionalID uuid.UUID) error
}

// BlockRepository интерфейс репозитория блокировок расписания
type BlockRepository interface {
	ListOverlapping(ctx context.Context, professionalID uuid.UUID, start, end time.Time) ([]*domain.ScheduleBlock, error)
}

// GuestRepository интерфейс репозитория гостевых контактов
type GuestRepository interface {
	Create(ctx context.Context, guest *domain.GuestBooking) (*domain.GuestBooking, error)
	GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*domain.GuestBooking, error)
}

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetBusiness(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error)
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// PolicyResolver возвращает действующую политику бронирования
type PolicyResolver interface {
	Resolve(ctx context.Context, businessID uuid.UUID, professionalID *uuid.UUID) (*domain.BookingPolicy, error)
}

// IdentityResolver определяет клиента бронирования
type IdentityResolver interface {
	Resolve(ctx context.Context, req *identity.Request) (*identity.Resolution, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики попыток бронирования
type Metrics interface {
	ObserveReservation(outcome string)
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
