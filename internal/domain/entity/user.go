package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account (patient, doctor or admin)
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"type:varchar(30);not null;default:''" json:"phone"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;default:'patient';index" json:"role"`
	IsDoctor  bool      `gorm:"not null;default:false" json:"is_doctor"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Notifications []Notification `gorm:"foreignKey:UserID" json:"notifications,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// GrantDoctor marks the account as owning an approved doctor record.
// Admin accounts keep their role.
func (u *User) GrantDoctor() {
	u.IsDoctor = true
	if !u.IsAdmin() {
		u.Role = RoleDoctor
	}
}

// RevokeDoctor clears the doctor flag and demotes a doctor back to patient
func (u *User) RevokeDoctor() {
	u.IsDoctor = false
	if u.Role == RoleDoctor {
		u.Role = RolePatient
	}
}
