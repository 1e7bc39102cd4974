package repository

import (
	"context"
	"errors"
	"fmt"

	"docspot/internal/domain/entity"
	domainRepo "docspot/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) domainRepo.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	if err := conn(ctx, r.db).Omit("User").Create(doctor).Error; err != nil {
		if isDuplicateKeyError(err, "user_id") {
			return domainRepo.ErrDoctorExists
		}
		return fmt.Errorf("create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := conn(ctx, r.db).Preload("User").Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := conn(ctx, r.db).Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

// FindAll lists doctors newest first. Supports optional filters: status, name and specialization.
func (r *doctorRepository) FindAll(ctx context.Context, filter *entity.DoctorFilter) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	query := conn(ctx, r.db).Preload("User")

	if filter != nil {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.Name != "" {
			query = query.Where("fullname ILIKE ?", "%"+filter.Name+"%")
		}
		if filter.Specialization != "" {
			query = query.Where("specialization ILIKE ?", "%"+filter.Specialization+"%")
		}
	}

	if err := query.Order("created_at DESC").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

// UpdateProfile writes the doctor-editable columns. Status, email and ownership are
// left to their own writers. Returns affected rows: 0 = the record is gone.
func (r *doctorRepository) UpdateProfile(ctx context.Context, doctor *entity.Doctor) (int64, error) {
	result := conn(ctx, r.db).Model(&entity.Doctor{}).
		Where("id = ?", doctor.ID).
		Updates(map[string]interface{}{
			"fullname":       doctor.FullName,
			"phone":          doctor.Phone,
			"address":        doctor.Address,
			"specialization": doctor.Specialization,
			"experience":     doctor.Experience,
			"fees":           doctor.Fees,
			"start_time":     doctor.StartTime,
			"end_time":       doctor.EndTime,
		})
	return result.RowsAffected, result.Error
}

// UpdateStatus atomically moves the doctor from one approval status to another.
// Returns affected rows: 1 = success, 0 = the status was no longer `from`.
func (r *doctorRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.DoctorStatus) (int64, error) {
	result := conn(ctx, r.db).Model(&entity.Doctor{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&entity.Doctor{})
	return result.RowsAffected, result.Error
}

func (r *doctorRepository) CountByStatus(ctx context.Context, status entity.DoctorStatus) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Doctor{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
