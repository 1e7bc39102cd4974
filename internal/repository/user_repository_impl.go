package repository

import (
	"context"
	"errors"
	"fmt"

	"docspot/internal/domain/entity"
	domainRepo "docspot/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := conn(ctx, r.db).Omit(clause.Associations).Create(user).Error; err != nil {
		if isDuplicateKeyError(err, "email") {
			return domainRepo.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := conn(ctx, r.db).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := conn(ctx, r.db).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	if err := conn(ctx, r.db).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindByRole(ctx context.Context, role string) ([]entity.User, error) {
	var users []entity.User
	if err := conn(ctx, r.db).Where("role = ?", role).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile writes the self-editable columns only
func (r *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone string) (int64, error) {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"name":  name,
		"phone": phone,
	})
}

func (r *userRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string, isDoctor bool) (int64, error) {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"role":      role,
		"is_doctor": isDoctor,
	})
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (int64, error) {
	return r.updateColumns(ctx, id, map[string]interface{}{
		"password": passwordHash,
	})
}

// updateColumns never inserts; a missing or deleted row yields 0 affected rows
func (r *userRepository) updateColumns(ctx context.Context, id uuid.UUID, columns map[string]interface{}) (int64, error) {
	result := conn(ctx, r.db).Model(&entity.User{}).Where("id = ?", id).Updates(columns)
	return result.RowsAffected, result.Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&entity.User{})
	return result.RowsAffected, result.Error
}

func (r *userRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
