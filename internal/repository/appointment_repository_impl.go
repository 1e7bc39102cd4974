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

const activeSlotConstraint = "uq_appointments_active_slot"

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

// CreateInSlot runs the slot check and the insert in one transaction. The doctor row is
// locked FOR UPDATE so bookings against the same doctor serialise, and the partial unique
// index on active slots rejects anything that slips past the check.
func (r *appointmentRepository) CreateInSlot(ctx context.Context, appointment *entity.Appointment) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var doctor entity.Doctor
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", appointment.DoctorID).
			First(&doctor).Error
		if err != nil {
			return fmt.Errorf("lock doctor %s: %w", appointment.DoctorID, err)
		}

		var taken int64
		err = tx.Model(&entity.Appointment{}).
			Where("doctor_id = ? AND date = ? AND time = ? AND status IN ?",
				appointment.DoctorID, appointment.Date, appointment.Time, entity.ActiveAppointmentStatuses).
			Count(&taken).Error
		if err != nil {
			return fmt.Errorf("check slot: %w", err)
		}
		if taken > 0 {
			return domainRepo.ErrSlotTaken
		}

		if err := tx.Create(appointment).Error; err != nil {
			if isDuplicateKeyError(err, activeSlotConstraint) {
				return domainRepo.ErrSlotTaken
			}
			return fmt.Errorf("insert appointment: %w", err)
		}
		return nil
	})
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := conn(ctx, r.db).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := conn(ctx, r.db).Where("id = ? AND user_id = ?", id, userID).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := conn(ctx, r.db).
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	if err := conn(ctx, r.db).Order("created_at DESC").Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindActiveTimes returns the occupied time strings of a doctor on a date
func (r *appointmentRepository) FindActiveTimes(ctx context.Context, doctorID uuid.UUID, date string) ([]string, error) {
	var times []string
	err := conn(ctx, r.db).Model(&entity.Appointment{}).
		Where("doctor_id = ? AND date = ? AND status IN ?", doctorID, date, entity.ActiveAppointmentStatuses).
		Order("time ASC").
		Pluck("time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

// UpdateStatus atomically changes the status ONLY if it is still one of `from`.
// Returns affected rows: 1 = success, 0 = status changed underneath (prevents double transitions).
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from []entity.AppointmentStatus, to entity.AppointmentStatus) (int64, error) {
	if len(from) == 0 {
		return 0, nil
	}
	result := conn(ctx, r.db).Model(&entity.Appointment{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Appointment{}).Count(&count).Error
	return count, err
}
