package domain

// Default booking policy values
const (
	DefaultSlotStepMinutes           = 30
	DefaultMinBookingNoticeMinutes   = 60
	DefaultAdvanceBookingDays        = 0 // 0 = unlimited
	DefaultCancellationNoticeMinutes = 0 // 0 = no notice window
)

// Business validation constants
const (
	MinSlotStepMinutes           = 5
	MaxSlotStepMinutes           = 240
	MaxAdvanceBookingDays        = 365
	MaxBookingNoticeMinutes      = 10080 // 1 week
	MaxCancellationNoticeMinutes = 10080
	MaxNotesLength               = 500
	MaxCancellationReasonLength  = 500
	MinGuestNameLength           = 2
	MaxGuestNameLength           = 120
	MinPhoneDigits               = 7
	MaxPhoneDigits               = 15
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses are the statuses whose intervals occupy a professional's time
var BlockingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
