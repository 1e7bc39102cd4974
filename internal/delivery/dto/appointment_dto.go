package dto

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID string `json:"doctor_id" form:"doctor_id" validate:"required,uuid"`
	Date     string `json:"date" form:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" form:"time" validate:"required,datetime=15:04"`

	// Document is the optional uploaded file, set from multipart requests only
	Document io.Reader `json:"-" form:"-"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type PatientInfoResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type DoctorInfoResponse struct {
	FullName       string          `json:"fullname"`
	Specialization string          `json:"specialization"`
	Fees           decimal.Decimal `json:"fees"`
	Address        string          `json:"address"`
}

type AppointmentResponse struct {
	ID         uuid.UUID           `json:"id"`
	UserID     uuid.UUID           `json:"user_id"`
	DoctorID   uuid.UUID           `json:"doctor_id"`
	UserInfo   PatientInfoResponse `json:"user_info"`
	DoctorInfo DoctorInfoResponse  `json:"doctor_info"`
	Date       string              `json:"date"`
	Time       string              `json:"time"`
	Document   string              `json:"document,omitempty"`
	Status     string              `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// AvailabilityResponse lists the occupied times of a doctor on a date
type AvailabilityResponse struct {
	DoctorID  uuid.UUID `json:"doctor_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Booked    []string  `json:"booked"`
}
