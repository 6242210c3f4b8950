package domain

import (
	"time"

	"github.com/google/uuid"
)

// GuestBooking holds contact details of a guest appointment.
// It is created in the same transaction as its appointment and never exists alone.
type GuestBooking struct {
	ID            uuid.UUID
	AppointmentID uuid.UUID
	ClientName    string
	ClientPhone   string
	ClientEmail   *string
	CreatedAt     time.Time
}

// NewGuestBooking stages a guest record for the given contact
func NewGuestBooking(contact GuestContact) *GuestBooking {
	return &GuestBooking{
		ClientName:  contact.Name,
		ClientPhone: contact.Phone,
		ClientEmail: contact.Email,
	}
}
