package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorStatus represents the approval state of a doctor application
type DoctorStatus string

const (
	DoctorStatusPending  DoctorStatus = "pending"
	DoctorStatusApproved DoctorStatus = "approved"
	DoctorStatusRejected DoctorStatus = "rejected"
)

// Doctor is the professional profile owned by exactly one user account.
// Contact fields are captured at application time and edited independently of the user.
type Doctor struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FullName       string          `gorm:"column:fullname;type:varchar(255);not null" json:"fullname"`
	Email          string          `gorm:"type:varchar(255);not null" json:"email"`
	Phone          string          `gorm:"type:varchar(30);not null" json:"phone"`
	Address        string          `gorm:"type:text;not null" json:"address"`
	Specialization string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Experience     int             `gorm:"not null" json:"experience"`
	Fees           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"fees"`
	StartTime      string          `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime        string          `gorm:"type:varchar(5);not null" json:"end_time"`
	Status         DoctorStatus    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// IsApproved checks if the doctor can accept bookings
func (d *Doctor) IsApproved() bool {
	return d.Status == DoctorStatusApproved
}

// CanTransitionTo reports whether the approval state machine allows moving to next.
// pending -> approved|rejected, approved -> rejected (revocation).
func (s DoctorStatus) CanTransitionTo(next DoctorStatus) bool {
	switch s {
	case DoctorStatusPending:
		return next == DoctorStatusApproved || next == DoctorStatusRejected
	case DoctorStatusApproved:
		return next == DoctorStatusRejected
	}
	return false
}

// WithinHours reports whether the HH:MM slot falls inside the daily operating bounds.
// A doctor without bounds accepts any slot.
func (d *Doctor) WithinHours(slot string) bool {
	if d.StartTime == "" || d.EndTime == "" {
		return true
	}
	// zero-padded HH:MM strings order lexically
	return slot >= d.StartTime && slot < d.EndTime
}
