package booking

import (
	"fmt"

	"clinic-scheduler/internal/model"
)

const (
	msgRequired     = "All fields are required."
	msgEndAfter     = "End time must be after start time."
	msgDate         = "Date must be given as YYYY-MM-DD."
	msgTime         = "Times must be given as HH:mm."
	msgOffGrid      = "Times must fall on the half hour between 08:00 and 18:00."
	msgIDRequired   = "Appointment id is required."
	msgUnknownDoc   = "Unknown doctor %q."
	msgUnknownTreat = "Unknown treatment %q."
)

// ValidationError carries a message meant for the person filling in the form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...any) *ValidationError {
	if len(args) == 0 {
		return &ValidationError{Message: format}
	}
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports that the requested interval overlaps an appointment
// already held by the same doctor on the same day.
type ConflictError struct {
	With model.Appointment
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already has an appointment from %s to %s on %s.",
		e.With.Doctor, e.With.Start, e.With.End, e.With.Date.Format("2006-01-02"))
}
