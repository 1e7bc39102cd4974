package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")

	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrDoctorNotAvailable = errors.New("doctor not found or not approved")
	ErrAlreadyApplied     = errors.New("you have already applied as a doctor")

	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotConflict        = errors.New("this time slot is already booked")
	ErrInvalidTransition   = errors.New("status transition is not allowed")

	ErrAuditLogNotFound = errors.New("audit log not found")
)

// Input errors wrap ErrInvalidInput so the delivery layer can map them as one family
var (
	ErrInvalidDoctorID     = fmt.Errorf("%w: doctor id must be a valid UUID", ErrInvalidInput)
	ErrInvalidDateFormat   = fmt.Errorf("%w: date must use the format YYYY-MM-DD", ErrInvalidInput)
	ErrInvalidTimeFormat   = fmt.Errorf("%w: time must use the format HH:MM", ErrInvalidInput)
	ErrOutsideWorkingHours = fmt.Errorf("%w: time is outside the doctor's working hours", ErrInvalidInput)
	ErrInvalidTimeRange    = fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	ErrNegativeFees        = fmt.Errorf("%w: fees must not be negative", ErrInvalidInput)
	ErrInvalidDoctorStatus = fmt.Errorf("%w: status must be approved or rejected", ErrInvalidInput)
	ErrCannotRemoveSelf    = fmt.Errorf("%w: you cannot remove your own account", ErrInvalidInput)
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)
