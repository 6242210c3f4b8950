package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	BusinessID      uuid.UUID       `json:"businessId"`
	ProfessionalID  uuid.UUID       `json:"professionalId"`
	ServiceID       uuid.UUID       `json:"serviceId"`
	Timezone        string          `json:"timezone"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель свободного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"` // RFC3339 со смещением компании
	EndTime   string `json:"endTime"`
	LocalTime string `json:"localTime"` // "10:30" в часовом поясе компании
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	duration := time.Duration(resp.DurationMinutes) * time.Minute
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, start := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: start.Format(time.RFC3339),
			EndTime:   start.Add(duration).Format(time.RFC3339),
			LocalTime: start.Format(domain.TimeFormat),
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		BusinessID:      resp.BusinessID,
		ProfessionalID:  resp.ProfessionalID,
		ServiceID:       resp.ServiceID,
		Timezone:        resp.Timezone,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(businessID, professionalID, serviceID uuid.UUID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		BusinessID:     businessID,
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
	}, nil
}
