package repository

import (
	"context"
	"errors"

	"docspot/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrEmailTaken is returned by Create when the email is already registered
var ErrEmailTaken = errors.New("email already registered")

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context) ([]entity.User, error)
	FindByRole(ctx context.Context, role string) ([]entity.User, error)
	// UpdateProfile, UpdateRole and UpdatePassword each write only their own columns.
	// Returns affected rows: 0 = no such user.
	UpdateProfile(ctx context.Context, id uuid.UUID, name, phone string) (int64, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string, isDoctor bool) (int64, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}
