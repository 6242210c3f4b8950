package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetBusiness(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error)
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListOverlapping получает неотменённые записи мастера, пересекающиеся с [start, end)
	ListOverlapping(ctx context.Context, professionalID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*domain.Appointment, error)
}

// BlockRepository интерфейс репозитория блокировок расписания
type BlockRepository interface {
	ListOverlapping(ctx context.Context, professionalID uuid.UUID, start, end time.Time) ([]*domain.ScheduleBlock, error)
}

// PolicyResolver возвращает действующую политику бронирования
type PolicyResolver interface {
	Resolve(ctx context.Context, businessID uuid.UUID, professionalID *uuid.UUID) (*domain.BookingPolicy, error)
}

// Metrics счетчики запросов доступности
type Metrics interface {
	ObserveAvailability(result string)
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
