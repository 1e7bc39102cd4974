package repository

import (
	"context"
	"errors"

	"docspot/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSlotTaken is returned by CreateInSlot when an active appointment already holds the slot
var ErrSlotTaken = errors.New("appointment slot already taken")

type AppointmentRepository interface {
	// CreateInSlot inserts the appointment only if no active appointment exists for the
	// same (doctor, date, time).
	CreateInSlot(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Appointment, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindAll(ctx context.Context) ([]entity.Appointment, error)
	FindActiveTimes(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error)
	// UpdateStatus moves the appointment to `to` only while its status is one of `from`.
	// Returns affected rows: 1 = moved, 0 = status changed underneath.
	UpdateStatus(ctx context.Context, id uuid.UUID, from []entity.AppointmentStatus, to entity.AppointmentStatus) (int64, error)
	Count(ctx context.Context) (int64, error)
}
