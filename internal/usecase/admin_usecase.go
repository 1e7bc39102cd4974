package usecase

import (
	"context"
	"fmt"

	"docspot/internal/converter"
	"docspot/internal/delivery/dto"
	"docspot/internal/domain/entity"
	"docspot/internal/domain/repository"
	"docspot/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AdminUsecase interface {
	GetAllUsers(ctx context.Context) (*dto.UserListResponse, error)
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetStats(ctx context.Context) (*dto.StatsResponse, error)
	SetDoctorStatus(ctx context.Context, adminID, doctorID uuid.UUID, status string) (*dto.DoctorResponse, error)
	RemoveDoctor(ctx context.Context, adminID, doctorID uuid.UUID) error
	RemoveUser(ctx context.Context, adminID, userID uuid.UUID) error
}

type adminUsecase struct {
	log             *logrus.Logger
	transactor      repository.Transactor
	userRepo        repository.UserRepository
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	notifier        service.Notifier
	auditService    service.AuditService
	tokenStore      service.TokenStore
}

func NewAdminUsecase(
	log *logrus.Logger,
	transactor repository.Transactor,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	notifier service.Notifier,
	auditService service.AuditService,
	tokenStore service.TokenStore,
) AdminUsecase {
	return &adminUsecase{
		log:             log,
		transactor:      transactor,
		userRepo:        userRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		auditService:    auditService,
		tokenStore:      tokenStore,
	}
}

func (u *adminUsecase) GetAllUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find all users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

func (u *adminUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx, nil)
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *adminUsecase) GetAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find all appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *adminUsecase) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	patients, err := u.userRepo.CountByRole(ctx, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}

	approved, err := u.doctorRepo.CountByStatus(ctx, entity.DoctorStatusApproved)
	if err != nil {
		u.log.Warnf("Failed to count approved doctors: %+v", err)
		return nil, err
	}

	pending, err := u.doctorRepo.CountByStatus(ctx, entity.DoctorStatusPending)
	if err != nil {
		u.log.Warnf("Failed to count pending doctors: %+v", err)
		return nil, err
	}

	appointments, err := u.appointmentRepo.Count(ctx)
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}

	return &dto.StatsResponse{
		Patients:        patients,
		ApprovedDoctors: approved,
		PendingDoctors:  pending,
		Appointments:    appointments,
	}, nil
}

// SetDoctorStatus approves or rejects a doctor application. The doctor status and the
// owning account's role change together in one transaction.
func (u *adminUsecase) SetDoctorStatus(ctx context.Context, adminID, doctorID uuid.UUID, status string) (*dto.DoctorResponse, error) {
	target := entity.DoctorStatus(status)
	if target != entity.DoctorStatusApproved && target != entity.DoctorStatusRejected {
		return nil, ErrInvalidDoctorStatus
	}

	var doctor *entity.Doctor
	var oldStatus entity.DoctorStatus

	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		doctor, err = u.doctorRepo.FindByID(ctx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor by ID: %+v", err)
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}

		oldStatus = doctor.Status
		if !oldStatus.CanTransitionTo(target) {
			return ErrInvalidTransition
		}

		rows, err := u.doctorRepo.UpdateStatus(ctx, doctor.ID, oldStatus, target)
		if err != nil {
			u.log.Warnf("Failed to update doctor %s status: %+v", doctor.ID, err)
			return err
		}
		if rows == 0 {
			return ErrInvalidTransition
		}
		doctor.Status = target

		owner, err := u.userRepo.FindByID(ctx, doctor.UserID)
		if err != nil {
			u.log.Warnf("Failed to find doctor owner %s: %+v", doctor.UserID, err)
			return err
		}
		if owner == nil {
			return ErrUserNotFound
		}

		if target == entity.DoctorStatusApproved {
			owner.GrantDoctor()
		} else {
			owner.RevokeDoctor()
		}

		rows, err = u.userRepo.UpdateRole(ctx, owner.ID, owner.Role, owner.IsDoctor)
		if err != nil {
			u.log.Warnf("Failed to update doctor owner %s: %+v", owner.ID, err)
			return err
		}
		if rows == 0 {
			return ErrUserNotFound
		}
		doctor.User = owner

		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Doctor %s moved from %s to %s by admin %s", doctor.ID, oldStatus, target, adminID)

	_ = u.notifier.Notify(ctx, doctor.UserID, service.Event{
		Type:    entity.NotificationDoctorStatus,
		Message: fmt.Sprintf("Your doctor application has been %s", target),
		Data: entity.JSON{
			"doctorId": doctor.ID.String(),
			"status":   string(target),
		},
		OnClickPath: "/profile",
	})

	_ = u.auditService.LogUpdate(ctx, &adminID, entity.AuditActionDoctorStatus, "doctor", doctor.ID.String(), oldStatus, target)

	return converter.DoctorToResponse(doctor), nil
}

// RemoveDoctor deletes the doctor record and demotes its owner back to a plain account
func (u *adminUsecase) RemoveDoctor(ctx context.Context, adminID, doctorID uuid.UUID) error {
	var removed *entity.Doctor

	err := u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor by ID: %+v", err)
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}

		rows, err := u.doctorRepo.Delete(ctx, doctor.ID)
		if err != nil {
			u.log.Warnf("Failed to delete doctor %s: %+v", doctor.ID, err)
			return err
		}
		if rows == 0 {
			return ErrDoctorNotFound
		}

		owner, err := u.userRepo.FindByID(ctx, doctor.UserID)
		if err != nil {
			u.log.Warnf("Failed to find doctor owner %s: %+v", doctor.UserID, err)
			return err
		}
		if owner != nil {
			owner.RevokeDoctor()
			if _, err := u.userRepo.UpdateRole(ctx, owner.ID, owner.Role, owner.IsDoctor); err != nil {
				u.log.Warnf("Failed to update doctor owner %s: %+v", owner.ID, err)
				return err
			}
		}

		removed = doctor
		return nil
	})
	if err != nil {
		return err
	}

	u.log.Infof("Doctor %s removed by admin %s", removed.ID, adminID)
	_ = u.auditService.LogDelete(ctx, &adminID, entity.AuditActionDoctorDelete, "doctor", removed.ID.String(), converter.DoctorToResponse(removed))

	return nil
}

// RemoveUser deletes an account. Its notifications and doctor record go with it;
// appointments keep their snapshots.
func (u *adminUsecase) RemoveUser(ctx context.Context, adminID, userID uuid.UUID) error {
	if adminID == userID {
		return ErrCannotRemoveSelf
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	rows, err := u.userRepo.Delete(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to delete user %s: %+v", userID, err)
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	if err := u.tokenStore.RevokeAll(ctx, userID); err != nil {
		u.log.Warnf("Failed to revoke tokens of removed user %s: %+v", userID, err)
	}

	u.log.Infof("User %s removed by admin %s", userID, adminID)
	_ = u.auditService.LogDelete(ctx, &adminID, entity.AuditActionUserDelete, "user", userID.String(), converter.UserToResponse(user))

	return nil
}
