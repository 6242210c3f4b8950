package domain

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Action is a lifecycle command applied to an appointment
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// transitions lists the only legal status moves
var transitions = map[Action]struct {
	from []AppointmentStatus
	to   AppointmentStatus
}{
	ActionConfirm:  {from: []AppointmentStatus{StatusPending}, to: StatusConfirmed},
	ActionComplete: {from: []AppointmentStatus{StatusConfirmed}, to: StatusCompleted},
	ActionCancel:   {from: []AppointmentStatus{StatusPending, StatusConfirmed}, to: StatusCancelled},
}

// ParseAction validates an action name
func ParseAction(s string) (Action, bool) {
	a := Action(s)
	_, ok := transitions[a]
	return a, ok
}

// NextStatus returns the status an action leads to from the given status.
// ok is false when the move is not allowed by the state machine.
func NextStatus(from AppointmentStatus, action Action) (AppointmentStatus, bool) {
	t, known := transitions[action]
	if !known {
		return "", false
	}
	for _, s := range t.from {
		if s == from {
			return t.to, true
		}
	}
	return "", false
}

// Appointment is a reservation of a professional's time for one service
type Appointment struct {
	ID             uuid.UUID
	BusinessID     uuid.UUID
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID
	ClientID       uuid.UUID // GuestClientID for guest bookings
	StartTime      time.Time
	// Copied from the service at creation time
	DurationMinutes int
	PaymentAmount   float64
	Status          AppointmentStatus
	Notes           *string
	IdempotencyKey  *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration returns the appointment length
func (a *Appointment) Duration() time.Duration {
	return time.Duration(a.DurationMinutes) * time.Minute
}

// EndTime returns the exclusive end of the appointment interval
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(a.Duration())
}

// IsCancelled returns true if the appointment no longer occupies time
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeRescheduled returns true if the appointment may move to another time
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsGuest returns true if the appointment was booked without an account
func (a *Appointment) IsGuest() bool {
	return a.ClientID == GuestClientID
}

// IsOwnedBy reports whether the authenticated account owns this appointment.
// Guest appointments are never owned by anyone.
func (a *Appointment) IsOwnedBy(identity ClientIdentity) bool {
	accountID, ok := identity.AccountID()
	return ok && !a.IsGuest() && a.ClientID == accountID
}
