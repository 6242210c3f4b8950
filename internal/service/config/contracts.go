package config

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	Create(ctx context.Context, p *domain.BookingPolicy) (*domain.BookingPolicy, error)
	GetByBusinessAndProfessional(ctx context.Context, businessID uuid.UUID, professionalID *uuid.UUID) (*domain.BookingPolicy, error)
	GetPolicyWithHierarchy(ctx context.Context, businessID uuid.UUID, professionalID *uuid.UUID) (*domain.BookingPolicy, error)
	GetAllByBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.BookingPolicy, error)
	Update(ctx context.Context, id uuid.UUID, p *domain.BookingPolicy) (*domain.BookingPolicy, error)
}

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetBusiness(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
