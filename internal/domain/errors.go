package domain

import "errors"

// Error taxonomy of the booking engine. Package-level sentinels wrap one of these
// kinds so callers can match either the specific error or its kind.
var (
	ErrNotFound          = errors.New("not found")
	ErrInactive          = errors.New("inactive")
	ErrValidation        = errors.New("validation failed")
	ErrSlotConflict      = errors.New("slot conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPolicyViolation   = errors.New("policy violation")
	ErrAccessDenied      = errors.New("access denied")
	ErrRateLimited       = errors.New("rate limited")
)

// ValidationError carries field-level messages for malformed input
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a message for field. The first message per field wins.
func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// HasErrors reports whether any field failed validation
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// OrNil returns nil when no field failed, so it can be returned directly as an error
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	return "validation failed: " + joinFields(e.Fields)
}

// Is makes errors.Is(err, ErrValidation) true for any *ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// PolicyViolationError describes which policy rejected the action
type PolicyViolationError struct {
	Policy string
	Reason string
}

func (e *PolicyViolationError) Error() string {
	return "policy violation: " + e.Policy + ": " + e.Reason
}

func (e *PolicyViolationError) Is(target error) bool {
	return target == ErrPolicyViolation
}
