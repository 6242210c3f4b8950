package domain

import (
	"time"

	"github.com/google/uuid"
)

// Business is the tenant offering services
type Business struct {
	ID           uuid.UUID
	Name         string
	Timezone     string
	OpeningHours OpeningHours
	IsActive     bool
}

// Location returns the business time zone, falling back to UTC for unknown names
func (b *Business) Location() *time.Location {
	if b.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Professional is a staff member; the unit of scheduling exclusivity
type Professional struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Name       string
	IsActive   bool
}

// Service is something a business offers, with fixed duration and price
type Service struct {
	ID              uuid.UUID
	BusinessID      uuid.UUID
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool
}

// Duration returns the service length
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}
