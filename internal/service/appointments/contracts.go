package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	ListByProfessional(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.AppointmentStatus, reason *string) error
}

// GuestRepository интерфейс репозитория гостевых контактов
type GuestRepository interface {
	GetByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*domain.GuestBooking, error)
}

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetBusiness(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error)
}

// PolicyResolver возвращает действующую политику бронирования
type PolicyResolver interface {
	Resolve(ctx context.Context, businessID uuid.UUID, professionalID *uuid.UUID) (*domain.BookingPolicy, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
