package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification types pushed into an account inbox
const (
	NotificationNewAppointment    = "new-appointment-request"
	NotificationAppointmentCancel = "appointment-cancelled"
	NotificationAppointmentStatus = "appointment-status-changed"
	NotificationDoctorApplication = "apply-doctor-request"
	NotificationDoctorStatus      = "doctor-account-request"
)

// Notification is a single inbox entry of an account. Unread entries have Seen=false.
type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        string    `gorm:"type:varchar(50);not null" json:"type"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Data        JSON      `gorm:"type:jsonb" json:"data,omitempty"`
	OnClickPath string    `gorm:"type:varchar(255)" json:"on_click_path,omitempty"`
	Seen        bool      `gorm:"not null;default:false;index" json:"seen"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
