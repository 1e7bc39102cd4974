package repository

import (
	"context"
	"errors"

	"docspot/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrDoctorExists is returned by Create when the user already owns a doctor record
var ErrDoctorExists = errors.New("doctor record already exists for user")

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Doctor, error)
	FindAll(ctx context.Context, filter *entity.DoctorFilter) ([]entity.Doctor, error)
	// UpdateProfile writes the profile fields only. Returns affected rows: 0 = no such doctor.
	UpdateProfile(ctx context.Context, doctor *entity.Doctor) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.DoctorStatus) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, status entity.DoctorStatus) (int64, error)
}
