package list_booking_policies

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/config/models"
)

type PolicyService interface {
	GetAllByBusiness(ctx context.Context, actor domain.Actor, businessID uuid.UUID) (*models.PolicyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
