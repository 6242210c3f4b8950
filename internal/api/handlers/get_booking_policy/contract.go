package get_booking_policy

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/service/config/models"
)

type PolicyService interface {
	GetEffective(ctx context.Context, businessID uuid.UUID, professionalID *uuid.UUID) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
