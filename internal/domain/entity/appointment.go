package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// ActiveAppointmentStatuses are the statuses that occupy a slot
var ActiveAppointmentStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusScheduled,
}

// PatientInfo is a snapshot of the patient taken at booking time
type PatientInfo struct {
	Name  string `gorm:"type:varchar(255)" json:"name"`
	Email string `gorm:"type:varchar(255)" json:"email"`
	Phone string `gorm:"type:varchar(30)" json:"phone"`
}

// DoctorInfo is a snapshot of the doctor taken at booking time
type DoctorInfo struct {
	FullName       string          `gorm:"column:fullname;type:varchar(255)" json:"fullname"`
	Specialization string          `gorm:"type:varchar(100)" json:"specialization"`
	Fees           decimal.Decimal `gorm:"type:decimal(10,2)" json:"fees"`
	Address        string          `gorm:"type:text" json:"address"`
}

// Appointment links a patient account to a doctor for a date/time slot.
// Rows are never deleted; cancellation is a status change.
type Appointment struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	DoctorID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientInfo PatientInfo       `gorm:"embedded;embeddedPrefix:patient_" json:"user_info"`
	DoctorInfo  DoctorInfo        `gorm:"embedded;embeddedPrefix:doctor_" json:"doctor_info"`
	Date        string            `gorm:"type:varchar(10);not null" json:"date"`
	Time        string            `gorm:"type:varchar(5);not null" json:"time"`
	Document    string            `gorm:"type:varchar(255);not null;default:''" json:"document"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsActive checks if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// IsActive checks if the status occupies a slot
func (s AppointmentStatus) IsActive() bool {
	return s == AppointmentStatusPending || s == AppointmentStatusScheduled
}

// IsValid reports whether s is a known status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo implements the appointment state machine:
// pending -> scheduled|cancelled, scheduled -> completed|cancelled.
// completed and cancelled are terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending:
		return next == AppointmentStatusScheduled || next == AppointmentStatusCancelled
	case AppointmentStatusScheduled:
		return next == AppointmentStatusCompleted || next == AppointmentStatusCancelled
	}
	return false
}

// SourceStatuses returns every status that may legally move to next
func (s AppointmentStatus) SourceStatuses() []AppointmentStatus {
	var from []AppointmentStatus
	for _, candidate := range []AppointmentStatus{AppointmentStatusPending, AppointmentStatusScheduled} {
		if candidate.CanTransitionTo(s) {
			from = append(from, candidate)
		}
	}
	return from
}
