package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type ApplyDoctorRequest struct {
	FullName       string          `json:"fullname" validate:"required,min=2,max=255"`
	Email          string          `json:"email" validate:"required,email"`
	Phone          string          `json:"phone" validate:"required,max=30"`
	Address        string          `json:"address" validate:"required"`
	Specialization string          `json:"specialization" validate:"required,max=100"`
	Experience     int             `json:"experience" validate:"gte=0"`
	Fees           decimal.Decimal `json:"fees"`
	StartTime      string          `json:"start_time" validate:"required,datetime=15:04"`
	EndTime        string          `json:"end_time" validate:"required,datetime=15:04"`
}

type UpdateDoctorProfileRequest struct {
	FullName       string           `json:"fullname" validate:"omitempty,min=2,max=255"`
	Phone          string           `json:"phone" validate:"omitempty,max=30"`
	Address        string           `json:"address" validate:"omitempty"`
	Specialization string           `json:"specialization" validate:"omitempty,max=100"`
	Experience     *int             `json:"experience" validate:"omitempty,gte=0"`
	Fees           *decimal.Decimal `json:"fees"`
	StartTime      string           `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime        string           `json:"end_time" validate:"omitempty,datetime=15:04"`
}

type UpdateDoctorStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// Response DTOs

type DoctorResponse struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	FullName       string          `json:"fullname"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	Specialization string          `json:"specialization"`
	Experience     int             `json:"experience"`
	Fees           decimal.Decimal `json:"fees"`
	StartTime      string          `json:"start_time"`
	EndTime        string          `json:"end_time"`
	Status         string          `json:"status"`
	User           *UserResponse   `json:"user,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
