package reschedule_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_appointment"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	StartTime string `json:"startTime"` // RFC3339
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID              uuid.UUID `json:"id"`
	BusinessID      uuid.UUID `json:"businessId"`
	ProfessionalID  uuid.UUID `json:"professionalId"`
	ServiceID       uuid.UUID `json:"serviceId"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	PreviousStart   time.Time `json:"previousStartTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(id uuid.UUID, actor domain.Actor) (*rescheduleAppointment.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}
	return &rescheduleAppointment.Request{
		AppointmentID: id,
		StartTime:     startTime,
		Actor:         actor,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:              resp.ID,
		BusinessID:      resp.BusinessID,
		ProfessionalID:  resp.ProfessionalID,
		ServiceID:       resp.ServiceID,
		StartTime:       resp.StartTime,
		EndTime:         resp.EndTime,
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		PreviousStart:   resp.PreviousStart,
	}
}
