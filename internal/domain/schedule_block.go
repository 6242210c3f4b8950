package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleBlock is a professional's unavailability interval [StartTime, EndTime)
type ScheduleBlock struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
	StartTime      time.Time
	EndTime        time.Time
	Reason         *string
}
